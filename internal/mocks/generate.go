package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name DataSource --dir ../domain/topscorers --output domain/topscorers --outpkg topscorersmock --filename data_source_mock.go
