package service

import (
	"github.com/ticketblock/ticketblock/internal/ledger"
	"github.com/ticketblock/ticketblock/internal/metadata"
	redis "github.com/ticketblock/ticketblock/internal/repository/redis"
	"github.com/ticketblock/ticketblock/internal/service/admin"
	"github.com/ticketblock/ticketblock/internal/service/gate"
	"github.com/ticketblock/ticketblock/internal/service/purchase"
	"github.com/ticketblock/ticketblock/internal/service/query"
	"github.com/ticketblock/ticketblock/internal/service/transfer"
)

type Services struct {
	Purchase *purchase.Service
	Gate     *gate.Service
	Transfer *transfer.Service
	Query    *query.Service
	Admin    *admin.Service
}

type Config struct {
	Query query.Config
}

func NewServices(
	l ledger.Ledger,
	meta metadata.Store,
	cache *redis.Cache,
	cfg Config,
) *Services {
	return &Services{
		Purchase: purchase.New(l, meta),
		Gate:     gate.New(l),
		Transfer: transfer.New(l),
		Query:    query.New(l, cache, cfg.Query),
		Admin:    admin.New(l),
	}
}
