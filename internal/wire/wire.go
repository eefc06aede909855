// Package wire provides dependency injection for tablegen.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"os"
	"sync"

	"k8s.io/klog/v2"

	cliadapter "github.com/example/tablegen/internal/adapters/cli"
	"github.com/example/tablegen/internal/adapters/filesystem"
	"github.com/example/tablegen/internal/adapters/registry"
	"github.com/example/tablegen/internal/adapters/sqlite"
	"github.com/example/tablegen/internal/adapters/yamlstore"
	"github.com/example/tablegen/internal/app"
	"github.com/example/tablegen/internal/config"
	"github.com/example/tablegen/internal/db"
	"github.com/example/tablegen/internal/ports/primary"
	"github.com/example/tablegen/internal/ports/secondary"
)

var (
	configPath = config.DefaultPath

	cfg           *config.Config
	templateStore *filesystem.TemplateStore
	configOnce    sync.Once

	manifest     *sqlite.EntityManifest
	manifestOnce sync.Once

	locator   *filesystem.ProjectLocator
	scanner   *filesystem.EntityScanner
	index     secondary.EntityIndex
	indexOnce sync.Once

	generatorService primary.GeneratorService
	generatorOnce    sync.Once

	indexService primary.IndexService
	indexSvcOnce sync.Once
)

// SetConfigPath sets the config file read on first use. It must be called
// before any accessor.
func SetConfigPath(path string) {
	if path != "" {
		configPath = path
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	configOnce.Do(initConfig)
	return cfg
}

// TemplateStore returns the template store honoring the configured override directory.
func TemplateStore() *filesystem.TemplateStore {
	configOnce.Do(initConfig)
	return templateStore
}

// GeneratorService returns the singleton GeneratorService instance.
func GeneratorService() primary.GeneratorService {
	generatorOnce.Do(initGenerator)
	return generatorService
}

// IndexService returns the singleton IndexService instance.
func IndexService() primary.IndexService {
	indexSvcOnce.Do(initIndexService)
	return indexService
}

// GenerateAdapter returns a new GenerateAdapter writing to stdout.
func GenerateAdapter() *cliadapter.GenerateAdapter {
	return GenerateAdapterWithOutput(os.Stdout)
}

// GenerateAdapterWithOutput returns a new GenerateAdapter writing to the given output.
func GenerateAdapterWithOutput(out io.Writer) *cliadapter.GenerateAdapter {
	return cliadapter.NewGenerateAdapter(GeneratorService(), out)
}

// IndexAdapter returns a new IndexAdapter writing to stdout.
func IndexAdapter() *cliadapter.IndexAdapter {
	return IndexAdapterWithOutput(os.Stdout)
}

// IndexAdapterWithOutput returns a new IndexAdapter writing to the given output.
func IndexAdapterWithOutput(out io.Writer) *cliadapter.IndexAdapter {
	return cliadapter.NewIndexAdapter(IndexService(), out)
}

func initConfig() {
	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		klog.Fatalf("failed to load config %s: %v", configPath, err)
	}
	cfg = loaded
	templateStore = filesystem.NewTemplateStore(cfg.TemplateDir)
	klog.V(4).Infof("loaded config: path=%s, metadata=%s, solution=%s", configPath, cfg.Metadata.Source, cfg.SolutionRoot)
}

// initManifest opens the manifest database, creating it on first use. Only
// the manifest index source and the index service need it.
func initManifest() {
	c := Config()
	manifestDB, err := db.OpenManifest(c.Index.ManifestPath)
	if err != nil {
		klog.Fatalf("failed to open entity manifest: %v", err)
	}
	manifest = sqlite.NewEntityManifest(manifestDB)
}

// initIndex builds the generated-entity index from the configured sources.
// The combined snapshot is taken once per process.
func initIndex() {
	c := Config()

	var err error
	locator, err = filesystem.NewProjectLocator(c.SolutionRoot)
	if err != nil {
		klog.Fatalf("failed to resolve solution root: %v", err)
	}
	scanner = filesystem.NewEntityScanner(c.Index.BaseTypes)

	var sources []secondary.EntityIndex
	if c.Index.Uses(config.SourceScan) {
		sources = append(sources, registry.NewScanIndex(scanner, locator.SolutionRoot()))
	}
	if c.Index.Uses(config.SourceManifest) {
		manifestOnce.Do(initManifest)
		sources = append(sources, manifest)
	}
	if c.Index.Uses(config.SourceRegistry) {
		declared := make([]secondary.EntityRecord, 0, len(c.Index.Registry))
		for _, e := range c.Index.Registry {
			declared = append(declared, secondary.EntityRecord{ClassName: e.ClassName, TableName: e.TableName, Source: configPath})
		}
		sources = append(sources, registry.NewStaticIndex(declared))
	}
	index = registry.NewCachedIndex(registry.NewCompositeIndex(sources...))
}

func initGenerator() {
	c := Config()
	indexOnce.Do(initIndex)

	var tableRepo secondary.TableRepository
	switch c.Metadata.Source {
	case "yaml":
		repo, err := yamlstore.Open(c.Metadata.Path)
		if err != nil {
			klog.Fatalf("failed to open metadata file: %v", err)
		}
		tableRepo = repo
	default:
		database, err := db.Open(c.Metadata.Source, c.Metadata.DSN)
		if err != nil {
			klog.Fatalf("failed to initialize database: %v", err)
		}
		tableRepo = sqlite.NewTableRepository(database)
	}

	layout := app.ProjectLayout{
		BusinessSuffix:   c.Projects.BusinessSuffix,
		RepositorySuffix: c.Projects.RepositorySuffix,
		WebAPISuffixes:   c.Projects.WebAPISuffixes,
		ControllerSuffix: c.Projects.ControllerSuffix,
	}

	generatorService = app.NewGeneratorService(tableRepo, index, TemplateStore(), locator, app.NewEffectExecutor(), layout)
}

func initIndexService() {
	indexOnce.Do(initIndex)
	manifestOnce.Do(initManifest)
	indexService = app.NewIndexService(scanner, manifest, index, locator)
}
