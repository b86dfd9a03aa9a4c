package tariff

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/parima/rentledger/internal/config"
	"github.com/parima/rentledger/internal/observability/metrics"
	"github.com/parima/rentledger/internal/tariff/domain"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func int64Ptr(v int64) *int64 { return &v }

// DefaultTariffConfig carries the published utility brackets in cents
// per unit, applied when no tariffs.yml is mounted.
func DefaultTariffConfig() domain.TariffConfig {
	return domain.TariffConfig{
		EBS: []domain.RateTier{
			{StartUsage: 0, EndUsage: int64Ptr(100), UnitAmountCents: 100},
			{StartUsage: 100, EndUsage: int64Ptr(500), UnitAmountCents: 150},
			{StartUsage: 500, EndUsage: nil, UnitAmountCents: 250},
		},
		SWM: []domain.RateTier{
			{StartUsage: 0, EndUsage: int64Ptr(50), UnitAmountCents: 75},
			{StartUsage: 50, EndUsage: int64Ptr(200), UnitAmountCents: 125},
			{StartUsage: 200, EndUsage: nil, UnitAmountCents: 200},
		},
	}
}

// Holder serves the current tariff tables. The tables hot-reload when
// the mounted tariffs.yml changes; an invalid file is ignored and the
// previous tables stay in effect.
type Holder struct {
	current atomic.Value // holds domain.TariffConfig
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewHolder(cfg config.Config, log *zap.Logger, m *metrics.Metrics) (*Holder, error) {
	v := viper.New()

	v.SetConfigName("tariffs")
	v.SetConfigType("yml")
	if path := strings.TrimSpace(cfg.TariffConfigPath); path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath("/var/lib/rentledger/config")
	v.AddConfigPath("/etc/rentledger")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RENTLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &Holder{log: log.Named("tariff.holder"), metrics: m}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		holder.current.Store(DefaultTariffConfig())
		return holder, nil
	}

	var tables domain.TariffConfig
	if err := v.UnmarshalKey("tariffs", &tables); err != nil {
		return nil, err
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	holder.current.Store(tables)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated domain.TariffConfig
		if err := v.UnmarshalKey("tariffs", &updated); err != nil {
			holder.log.Warn("tariff reload failed", zap.Error(err))
			holder.metrics.RecordTariffReload(context.Background(), "error")
			return
		}
		if err := updated.Validate(); err != nil {
			holder.log.Warn("invalid tariff config ignored", zap.Error(err))
			holder.metrics.RecordTariffReload(context.Background(), "rejected")
			return
		}
		holder.current.Store(updated)
		holder.log.Info("tariff tables reloaded", zap.String("file", e.Name))
		holder.metrics.RecordTariffReload(context.Background(), "applied")
	})

	return holder, nil
}

func (h *Holder) Get() domain.TariffConfig {
	return h.current.Load().(domain.TariffConfig)
}

// NewStaticHolder serves a fixed table with no file watching.
func NewStaticHolder(tables domain.TariffConfig, log *zap.Logger) *Holder {
	holder := &Holder{log: log.Named("tariff.holder")}
	holder.current.Store(tables)
	return holder
}
