package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name QueryRepository --dir ../domain/player --output domain/player --outpkg playermock --filename query_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/player --output domain/player --outpkg playermock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name QueryRepository --dir ../domain/playerstat --output domain/playerstat --outpkg playerstatmock --filename query_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name QueryRepository --dir ../domain/match --output domain/match --outpkg matchmock --filename query_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/match --output domain/match --outpkg matchmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name QueryRepository --dir ../domain/standing --output domain/standing --outpkg standingmock --filename query_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name QueryRepository --dir ../domain/team --output domain/team --outpkg teammock --filename query_repository_mock.go
