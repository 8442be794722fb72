package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"gridpick/internal/catalog"
	"gridpick/internal/config"
	"gridpick/internal/domain"
	"gridpick/internal/eventbus"
	"gridpick/internal/filter"
	"gridpick/internal/logger"
	"gridpick/internal/selection"
)

// sourceFlags are shared by every command that loads resources
type sourceFlags struct {
	demo     int
	filter   string
	idField  string
	output   string
	selected []string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.demo, "demo", 0, "Generate N demo resources instead of reading a file")
	cmd.Flags().StringVar(&f.filter, "filter", "", "Expression deciding which rows can be selected")
	cmd.Flags().StringVar(&f.idField, "id-field", "", "Field holding the resource id")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Result format: lines, json or yaml")
	cmd.Flags().StringSliceVar(&f.selected, "select", nil, "Ids selected at start")
}

// session bundles the services a command needs once resources are loaded
type session struct {
	cfg       *config.Config
	log       *logger.Logger
	bus       eventbus.EventBus
	resources []domain.Resource
	filter    selection.Filter[domain.Resource]
	closers   []func() error
}

// logSink decides where a command's log lines go once the config is known
type logSink func(cfg *config.Config) (io.Writer, bool, func() error, error)

// fileSink appends to the configured log file so the terminal stays free
func fileSink(cfg *config.Config) (io.Writer, bool, func() error, error) {
	if cfg.Logging.File == "" {
		return io.Discard, false, nil, nil
	}
	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, false, nil, errors.Wrapf(err, "open log file %s", cfg.Logging.File)
	}
	return f, false, f.Close, nil
}

func streamSink(w io.Writer) logSink {
	return func(*config.Config) (io.Writer, bool, func() error, error) {
		return w, true, nil, nil
	}
}

func loadConfig(root *rootFlags) (*config.Config, string, error) {
	if root.configPath != "" {
		cfg, err := config.NewConfigService(filepath.Dir(root.configPath)).LoadFromPath(root.configPath)
		return cfg, root.configPath, err
	}

	dir, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Wrap(err, "resolve working directory")
	}
	cfg, err := config.NewConfigService(dir).Load()
	return cfg, filepath.Join(dir, config.FileName), err
}

func logLevel(root *rootFlags, cfg *config.Config) string {
	switch {
	case root.verbose:
		return "debug"
	case root.logLevel != "":
		return root.logLevel
	default:
		return cfg.Logging.Level
	}
}

func newSession(ctx context.Context, root *rootFlags, src *sourceFlags, args []string, sink logSink) (*session, error) {
	cfg, cfgPath, err := loadConfig(root)
	if err != nil {
		return nil, err
	}
	src.apply(cfg)

	out, human, closeLog, err := sink(cfg)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(logger.Options{Level: logLevel(root, cfg), HumanReadable: human, Writer: out})
	if err != nil {
		if closeLog != nil {
			_ = closeLog()
		}
		return nil, errors.Wrap(err, "configure logger")
	}

	s := &session{cfg: cfg, log: log}
	if closeLog != nil {
		s.closers = append(s.closers, closeLog)
	}

	s.bus = eventbus.New(log)
	s.closers = append([]func() error{func() error { s.bus.Close(); return nil }}, s.closers...)
	logEvents(s.bus, log)
	s.bus.Publish(eventbus.ConfigLoadedEvent{Path: cfgPath})

	if err := s.load(ctx, src, args); err != nil {
		s.Close()
		return nil, err
	}

	s.filter, err = filter.Compile(cfg.Filter, log)
	if err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// apply copies explicitly set flags over the loaded configuration
func (f *sourceFlags) apply(cfg *config.Config) {
	if f.filter != "" {
		cfg.Filter = f.filter
	}
	if f.idField != "" {
		cfg.IDField = f.idField
	}
	if f.output != "" {
		cfg.Output = f.output
	}
}

func (s *session) load(ctx context.Context, src *sourceFlags, args []string) error {
	var source string
	switch {
	case len(args) > 0:
		resources, err := catalog.Load(ctx, args[0])
		if err != nil {
			return err
		}
		s.resources, source = resources, args[0]
	case src.demo > 0:
		s.resources, source = catalog.Generate(src.demo), "demo"
	default:
		return errors.New("no resources: pass a file or --demo N")
	}

	s.bus.Publish(eventbus.ResourcesLoadedEvent{Source: source, Count: len(s.resources)})
	return nil
}

// resolver returns nil when the default id field is in use
func (s *session) resolver() selection.IDResolver[domain.Resource] {
	field := s.cfg.ResolvedIDField()
	if field == domain.IDField {
		return nil
	}
	return fieldResolver(field)
}

func (s *session) columns() []string {
	if len(s.cfg.UISettings.Columns) > 0 {
		return s.cfg.UISettings.Columns
	}
	return catalog.Columns(s.resources, s.cfg.ResolvedIDField())
}

func (s *session) resourceName() selection.ResourceName {
	return selection.ResourceName{
		Singular: s.cfg.ResourceName.Singular,
		Plural:   s.cfg.ResourceName.Plural,
	}
}

// Close releases the bus and log file
func (s *session) Close() {
	for _, c := range s.closers {
		_ = c()
	}
	s.closers = nil
}

func fieldResolver(field string) selection.IDResolver[domain.Resource] {
	return func(r domain.Resource) (string, error) {
		id, ok := r.FieldString(field)
		if !ok || id == "" {
			return "", errors.Errorf("missing %q field", field)
		}
		return id, nil
	}
}

func logEvents(bus eventbus.EventBus, log *logger.Logger) {
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		log.Debug("config loaded", map[string]any{"path": e.(eventbus.ConfigLoadedEvent).Path})
	})
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		log.Info("config saved", map[string]any{"path": e.(eventbus.ConfigSavedEvent).Path})
	})
	bus.Subscribe(eventbus.EventResourcesLoaded, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.ResourcesLoadedEvent)
		log.Info("resources loaded", map[string]any{"source": ev.Source, "count": ev.Count})
	})
	bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.SelectionChangedEvent)
		log.Debug("selection changed", map[string]any{
			"gesture": ev.Gesture,
			"added":   len(ev.Added),
			"removed": len(ev.Removed),
			"total":   ev.Total,
			"all":     ev.AllSelected,
		})
	})
	bus.Subscribe(eventbus.EventSelectionCleared, func(eventbus.DomainEvent) {
		log.Debug("selection cleared")
	})
	bus.Subscribe(eventbus.EventResourcesRemoved, func(e eventbus.DomainEvent) {
		log.Info("resources removed", map[string]any{"ids": e.(eventbus.ResourcesRemovedEvent).IDs})
	})
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.ErrorEvent)
		log.Error(ev.Err, ev.Message)
	})
}
