package fx

import (
	"league-draft-bot/internal/api"
	"league-draft-bot/internal/config"
	"league-draft-bot/internal/database"
	"league-draft-bot/internal/logger"
	"league-draft-bot/internal/repository"
	"league-draft-bot/internal/roles"
	"league-draft-bot/internal/server"
	"league-draft-bot/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewSanctionRepository),
	// riot client + role inference
	fx.Provide(api.NewRiotClient),
	fx.Provide(ProvideRoleEngine),
	// svc
	fx.Provide(ProvidePlayerService),
	fx.Provide(ProvideMarketService),
	// server
	fx.Provide(server.NewDraftServer),
)

// The services accept interfaces; fx needs the concrete-to-interface
// bindings spelled out.

func ProvideRoleEngine(riot *api.RiotClient, log zerolog.Logger) *roles.Engine {
	return roles.NewEngine(riot, log)
}

func ProvidePlayerService(riot *api.RiotClient, engine *roles.Engine, players *repository.PlayerRepository, sanctions *repository.SanctionRepository, log zerolog.Logger) *service.PlayerService {
	return service.NewPlayerService(riot, engine, players, sanctions, log)
}

func ProvideMarketService(players *repository.PlayerRepository, log zerolog.Logger) *service.MarketService {
	return service.NewMarketService(players, log)
}
