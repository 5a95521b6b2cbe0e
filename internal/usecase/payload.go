package usecase

import (
	"fmt"
	"strconv"
	"strings"
)

// flexInt accepts a JSON number, a numeric string ("7", "85%") or null.
// Anything it cannot parse decodes to an invalid zero value.
type flexInt struct {
	value int
	valid bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	*f = flexInt{}
	text := trimJSONScalar(data)
	if text == "" {
		return nil
	}
	if n, err := strconv.Atoi(text); err == nil {
		f.value, f.valid = n, true
		return nil
	}
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		f.value, f.valid = int(v), true
	}
	return nil
}

func (f flexInt) Int() int {
	return f.value
}

func (f flexInt) Ptr() *int {
	if !f.valid {
		return nil
	}
	v := f.value
	return &v
}

func (f flexInt) Int64Ptr() *int64 {
	if !f.valid || f.value <= 0 {
		return nil
	}
	v := int64(f.value)
	return &v
}

// flexFloat is flexInt for decimals such as player ratings ("7.3").
type flexFloat struct {
	value float64
	valid bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	*f = flexFloat{}
	text := trimJSONScalar(data)
	if text == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		f.value, f.valid = v, true
	}
	return nil
}

func (f flexFloat) Ptr() *float64 {
	if !f.valid {
		return nil
	}
	v := f.value
	return &v
}

func trimJSONScalar(data []byte) string {
	text := strings.TrimSpace(string(data))
	if text == "null" {
		return ""
	}
	text = strings.TrimSpace(strings.Trim(text, `"`))
	return strings.TrimSpace(strings.TrimSuffix(text, "%"))
}

// apiEnvelope is the provider wrapper around every stored response body.
// parameters is an object, or [] when the request had none.
type apiEnvelope[T any] struct {
	Parameters any `json:"parameters"`
	Response   []T `json:"response"`
}

func (e apiEnvelope[T]) parameter(key string) string {
	params, ok := e.Parameters.(map[string]any)
	if !ok {
		return ""
	}
	switch v := params[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

type leaguePayload struct {
	League *struct {
		ID   flexInt `json:"id"`
		Name string  `json:"name"`
		Type string  `json:"type"`
		Logo string  `json:"logo"`
	} `json:"league"`
	Country struct {
		Name string `json:"name"`
		Code string `json:"code"`
		Flag string `json:"flag"`
	} `json:"country"`
	Seasons []seasonPayload `json:"seasons"`
}

type seasonPayload struct {
	Year    flexInt `json:"year"`
	Start   string  `json:"start"`
	End     string  `json:"end"`
	Current bool    `json:"current"`
}

type teamPayload struct {
	Team *struct {
		ID       flexInt `json:"id"`
		Name     string  `json:"name"`
		Code     string  `json:"code"`
		Country  string  `json:"country"`
		Founded  flexInt `json:"founded"`
		National bool    `json:"national"`
		Logo     string  `json:"logo"`
	} `json:"team"`
	Venue *venuePayload `json:"venue"`
}

type venuePayload struct {
	ID       flexInt `json:"id"`
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	Capacity flexInt `json:"capacity"`
	Surface  *string `json:"surface"`
	Image    *string `json:"image"`
}

type goalPairPayload struct {
	Home flexInt `json:"home"`
	Away flexInt `json:"away"`
}

type fixturePayload struct {
	Fixture *struct {
		ID      flexInt       `json:"id"`
		Referee *string       `json:"referee"`
		Date    string        `json:"date"`
		Venue   *venuePayload `json:"venue"`
		Status  struct {
			Long    string  `json:"long"`
			Short   string  `json:"short"`
			Elapsed flexInt `json:"elapsed"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID     flexInt `json:"id"`
		Season flexInt `json:"season"`
		Round  string  `json:"round"`
	} `json:"league"`
	Teams struct {
		Home struct {
			ID flexInt `json:"id"`
		} `json:"home"`
		Away struct {
			ID flexInt `json:"id"`
		} `json:"away"`
	} `json:"teams"`
	Goals goalPairPayload `json:"goals"`
	Score struct {
		Halftime  goalPairPayload `json:"halftime"`
		Extratime goalPairPayload `json:"extratime"`
		Penalty   goalPairPayload `json:"penalty"`
	} `json:"score"`
}

type standingsPayload struct {
	League *struct {
		ID        flexInt                 `json:"id"`
		Season    flexInt                 `json:"season"`
		Standings [][]standingRowPayload `json:"standings"`
	} `json:"league"`
}

type standingRowPayload struct {
	Rank flexInt `json:"rank"`
	Team struct {
		ID   flexInt `json:"id"`
		Name string  `json:"name"`
	} `json:"team"`
	Points      flexInt `json:"points"`
	GoalsDiff   flexInt `json:"goalsDiff"`
	Group       string  `json:"group"`
	Form        string  `json:"form"`
	Status      string  `json:"status"`
	Description *string `json:"description"`
	All         struct {
		Played flexInt `json:"played"`
		Win    flexInt `json:"win"`
		Draw   flexInt `json:"draw"`
		Lose   flexInt `json:"lose"`
		Goals  struct {
			For     flexInt `json:"for"`
			Against flexInt `json:"against"`
		} `json:"goals"`
	} `json:"all"`
}

type fixturePlayersPayload struct {
	Team *struct {
		ID flexInt `json:"id"`
	} `json:"team"`
	Players []struct {
		Player *struct {
			ID    flexInt `json:"id"`
			Name  string  `json:"name"`
			Photo *string `json:"photo"`
		} `json:"player"`
		Statistics []playerMatchStatsPayload `json:"statistics"`
	} `json:"players"`
}

type playerMatchStatsPayload struct {
	Games struct {
		Minutes    flexInt   `json:"minutes"`
		Number     flexInt   `json:"number"`
		Position   string    `json:"position"`
		Rating     flexFloat `json:"rating"`
		Captain    bool      `json:"captain"`
		Substitute bool      `json:"substitute"`
	} `json:"games"`
	Offsides flexInt `json:"offsides"`
	Shots    struct {
		Total flexInt `json:"total"`
		On    flexInt `json:"on"`
	} `json:"shots"`
	Goals struct {
		Total    flexInt `json:"total"`
		Conceded flexInt `json:"conceded"`
		Assists  flexInt `json:"assists"`
		Saves    flexInt `json:"saves"`
	} `json:"goals"`
	Passes struct {
		Total    flexInt `json:"total"`
		Key      flexInt `json:"key"`
		Accuracy flexInt `json:"accuracy"`
	} `json:"passes"`
	Tackles struct {
		Total         flexInt `json:"total"`
		Blocks        flexInt `json:"blocks"`
		Interceptions flexInt `json:"interceptions"`
	} `json:"tackles"`
	Duels struct {
		Total flexInt `json:"total"`
		Won   flexInt `json:"won"`
	} `json:"duels"`
	Dribbles struct {
		Attempts flexInt `json:"attempts"`
		Success  flexInt `json:"success"`
		Past     flexInt `json:"past"`
	} `json:"dribbles"`
	Fouls struct {
		Drawn     flexInt `json:"drawn"`
		Committed flexInt `json:"committed"`
	} `json:"fouls"`
	Cards struct {
		Yellow flexInt `json:"yellow"`
		Red    flexInt `json:"red"`
	} `json:"cards"`
	Penalty struct {
		Won flexInt `json:"won"`
		// The provider spells this key with one t.
		Committed flexInt `json:"commited"`
		Scored    flexInt `json:"scored"`
		Missed    flexInt `json:"missed"`
		Saved     flexInt `json:"saved"`
	} `json:"penalty"`
}

type playerProfilePayload struct {
	Player *struct {
		ID        flexInt `json:"id"`
		Name      string  `json:"name"`
		Firstname *string `json:"firstname"`
		Lastname  *string `json:"lastname"`
		Age       flexInt `json:"age"`
		Birth     struct {
			Date    *string `json:"date"`
			Place   *string `json:"place"`
			Country *string `json:"country"`
		} `json:"birth"`
		Nationality *string `json:"nationality"`
		Height      *string `json:"height"`
		Weight      *string `json:"weight"`
		Number      flexInt `json:"number"`
		Position    *string `json:"position"`
		Photo       *string `json:"photo"`
	} `json:"player"`
	Statistics []struct {
		Games struct {
			Number   flexInt `json:"number"`
			Position *string `json:"position"`
		} `json:"games"`
	} `json:"statistics"`
}
