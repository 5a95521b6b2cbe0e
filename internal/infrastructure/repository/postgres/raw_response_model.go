package postgres

import "time"

type rawResponseTableModel struct {
	ID            int64     `db:"response_id"`
	Endpoint      string    `db:"endpoint"`
	RequestParams []byte    `db:"request_params"`
	ResponseData  []byte    `db:"response_data"`
	FetchedAt     time.Time `db:"fetched_at"`
}

type rawResponseInsertModel struct {
	Endpoint      string `db:"endpoint"`
	RequestParams string `db:"request_params"`
	ResponseData  string `db:"response_data"`
}
