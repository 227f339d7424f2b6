package app

import (
	"context"
	"io"

	"github.com/amaumene/traktmanager/internal/config"
	"github.com/amaumene/traktmanager/internal/controllers"
	"github.com/amaumene/traktmanager/internal/metrics"
	"github.com/amaumene/traktmanager/internal/models"
	"github.com/amaumene/traktmanager/internal/presenters"
	"github.com/amaumene/traktmanager/internal/services/trakt"
	"github.com/amaumene/traktmanager/internal/tracing"
	"github.com/amaumene/traktmanager/internal/utils"
	"github.com/google/wire"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/trace"
)

// StdoutJSON as the JSON path sends JSON to stdout in place of the console tables
const StdoutJSON = "-"

// Output selects where results are presented
type Output struct {
	Stdout   io.Writer
	Fs       afero.Fs
	JSONPath string
}

// App holds the object graph for one CLI invocation
type App struct {
	Config     *config.Config
	Logger     *logrus.Logger
	Metrics    *metrics.Metrics
	Tracing    *tracing.Provider
	Tokens     trakt.TokenStore
	Client     *trakt.Client
	DeviceAuth *controllers.DeviceAuthController
	Calendar   *controllers.CalendarOrchestrator
	Watchlist  *controllers.WatchlistOrchestrator
	Lists      *controllers.ListsOrchestrator
}

// presenterSet groups the presenters of every result kind
type presenterSet struct {
	calendar  []controllers.CalendarPresenter
	watchlist []controllers.WatchlistPresenter
	lists     []controllers.ListsPresenter
}

var providerSet = wire.NewSet(
	ProvideLogger,
	metrics.New,
	ProvideTracing,
	ProvideTracer,
	ProvideTokenStore,
	wire.Bind(new(trakt.TokenStore), new(*trakt.MemoryTokenStore)),
	trakt.NewClient,
	wire.Bind(new(controllers.DeviceAuthClient), new(*trakt.Client)),
	wire.Bind(new(controllers.CalendarClient), new(*trakt.Client)),
	wire.Bind(new(controllers.WatchlistClient), new(*trakt.Client)),
	wire.Bind(new(controllers.ListsClient), new(*trakt.Client)),
	wire.Bind(new(controllers.PresentRecorder), new(*metrics.Metrics)),
	controllers.NewDeviceAuthController,
	ProvideListsController,
	providePresenters,
	ProvideCalendarOrchestrator,
	ProvideWatchlistOrchestrator,
	ProvideListsOrchestrator,
	wire.Struct(new(App), "*"),
)

// ProvideLogger builds the logger from the logging settings
func ProvideLogger(cfg *config.Config) *logrus.Logger {
	return utils.NewLogger(utils.LoggerOptions{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
}

// ProvideTracing builds the tracer provider; the cleanup flushes it
func ProvideTracing(cfg *config.Config, logger *logrus.Logger) (*tracing.Provider, func()) {
	p := tracing.NewProvider(cfg.TracingEnabled, logger)
	return p, func() {
		if err := p.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Warn("Failed to shut down tracer provider")
		}
	}
}

func ProvideTracer(p *tracing.Provider) trace.Tracer {
	return p.Tracer()
}

// ProvideTokenStore seeds the token store with a pre-provisioned access token, if any
func ProvideTokenStore(cfg *config.Config) *trakt.MemoryTokenStore {
	if cfg.TraktAccessToken == "" {
		return trakt.NewMemoryTokenStore(nil)
	}
	return trakt.NewMemoryTokenStore(&models.DeviceToken{
		AccessToken:  cfg.TraktAccessToken,
		TokenType:    "Bearer",
		RefreshToken: cfg.TraktRefreshToken,
	})
}

func ProvideListsController(client controllers.ListsClient, cfg *config.Config, logger *logrus.Logger) *controllers.ListsController {
	return controllers.NewListsController(client, cfg.ListItemWorkers, logger)
}

// providePresenters picks the console presenter, the JSON presenter or both
func providePresenters(out Output) presenterSet {
	var set presenterSet
	if out.JSONPath != StdoutJSON {
		console := presenters.NewConsolePresenter(out.Stdout)
		set.calendar = append(set.calendar, console)
		set.watchlist = append(set.watchlist, console)
		set.lists = append(set.lists, console)
	}
	if out.JSONPath != "" {
		path := out.JSONPath
		if path == StdoutJSON {
			path = ""
		}
		fs := out.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		j := presenters.NewJSONPresenter(fs, path, out.Stdout)
		set.calendar = append(set.calendar, j)
		set.watchlist = append(set.watchlist, j)
		set.lists = append(set.lists, j)
	}
	return set
}

func ProvideCalendarOrchestrator(client controllers.CalendarClient, set presenterSet, recorder controllers.PresentRecorder, logger *logrus.Logger) *controllers.CalendarOrchestrator {
	return controllers.NewCalendarOrchestrator(client, set.calendar, recorder, logger)
}

func ProvideWatchlistOrchestrator(client controllers.WatchlistClient, set presenterSet, recorder controllers.PresentRecorder, logger *logrus.Logger) *controllers.WatchlistOrchestrator {
	return controllers.NewWatchlistOrchestrator(client, set.watchlist, recorder, logger)
}

func ProvideListsOrchestrator(controller *controllers.ListsController, set presenterSet, recorder controllers.PresentRecorder, logger *logrus.Logger) *controllers.ListsOrchestrator {
	return controllers.NewListsOrchestrator(controller, set.lists, recorder, logger)
}
