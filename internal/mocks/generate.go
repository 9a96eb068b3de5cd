package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name TournamentFeed --dir ../usecase --output usecase --outpkg usecasemock --filename tournament_feed_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/series --output domain/series --outpkg seriesmock --filename repository_mock.go
