package app

import (
	"context"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/example/tablegen/internal/core/artifact"
	"github.com/example/tablegen/internal/core/effects"
	"github.com/example/tablegen/internal/core/metadata"
	"github.com/example/tablegen/internal/core/module"
	"github.com/example/tablegen/internal/ctxutil"
	"github.com/example/tablegen/internal/ports/primary"
	"github.com/example/tablegen/internal/ports/secondary"
)

// ProjectLayout names the project-directory suffixes searched in the solution root.
type ProjectLayout struct {
	BusinessSuffix   string
	RepositorySuffix string
	WebAPISuffixes   []string // tried in order when deriving StartName
	ControllerSuffix string
}

// DefaultProjectLayout returns the conventional layout of a generated solution.
func DefaultProjectLayout() ProjectLayout {
	return ProjectLayout{
		BusinessSuffix:   ".App",
		RepositorySuffix: ".Repository",
		WebAPISuffixes:   []string{".WebApi", "Api", ".Mvc"},
		ControllerSuffix: ".WebApi",
	}
}

// GeneratorServiceImpl implements the GeneratorService interface.
type GeneratorServiceImpl struct {
	tableRepo secondary.TableRepository
	index     secondary.EntityIndex
	templates secondary.TemplateStore
	projects  secondary.ProjectLocator
	executor  EffectExecutor
	layout    ProjectLayout
}

// NewGeneratorService creates a new GeneratorService with injected dependencies.
func NewGeneratorService(
	tableRepo secondary.TableRepository,
	index secondary.EntityIndex,
	templates secondary.TemplateStore,
	projects secondary.ProjectLocator,
	executor EffectExecutor,
	layout ProjectLayout,
) *GeneratorServiceImpl {
	return &GeneratorServiceImpl{
		tableRepo: tableRepo,
		index:     index,
		templates: templates,
		projects:  projects,
		executor:  executor,
		layout:    layout,
	}
}

// run carries the state shared by every step of one operation.
type run struct {
	session artifact.Session
	table   metadata.TableDefinition
	columns []metadata.ColumnDefinition
	index   *module.Index
	dryRun  bool
	resp    *primary.GenerateResponse
}

type planFunc func(artifact.Session, artifact.Input) artifact.Plan

// GenerateEntity writes the entity model for a table.
func (s *GeneratorServiceImpl) GenerateEntity(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error) {
	ctx, r, err := s.begin(ctx, req.TableID, req.DryRun)
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("generating entity: session=%s, table=%s", r.session.ID, r.table.TableName)

	if err := s.entity(ctx, r); err != nil {
		return nil, err
	}
	return r.resp, nil
}

// GenerateBusinessLayer writes the business class, both request types and the
// controller. Steps run in order and stop at the first failure; files already
// written by earlier steps are left in place.
func (s *GeneratorServiceImpl) GenerateBusinessLayer(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error) {
	ctx, r, err := s.begin(ctx, req.TableID, req.DryRun)
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("generating business layer: session=%s, table=%s", r.session.ID, r.table.TableName)

	if err := s.businessLayer(ctx, r); err != nil {
		return r.resp, err
	}
	return r.resp, nil
}

// GenerateFrontendView writes the Vue page for a table under req.RootPath.
func (s *GeneratorServiceImpl) GenerateFrontendView(ctx context.Context, req primary.FrontendRequest) (*primary.GenerateResponse, error) {
	if err := metadata.CanGenerateFrontend(metadata.FrontendContext{RootPath: req.RootPath}).Error(); err != nil {
		return nil, err
	}
	ctx, r, err := s.begin(ctx, req.TableID, req.DryRun)
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("generating vue view: session=%s, table=%s, root=%s", r.session.ID, r.table.TableName, req.RootPath)

	if err := s.frontendView(ctx, r, req.RootPath); err != nil {
		return nil, err
	}
	return r.resp, nil
}

// GenerateFrontendAPIClient writes the Vue API client for a table under req.RootPath.
func (s *GeneratorServiceImpl) GenerateFrontendAPIClient(ctx context.Context, req primary.FrontendRequest) (*primary.GenerateResponse, error) {
	if err := metadata.CanGenerateFrontend(metadata.FrontendContext{RootPath: req.RootPath}).Error(); err != nil {
		return nil, err
	}
	ctx, r, err := s.begin(ctx, req.TableID, req.DryRun)
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("generating vue api client: session=%s, table=%s, root=%s", r.session.ID, r.table.TableName, req.RootPath)

	if err := s.frontendAPI(ctx, r, req.RootPath); err != nil {
		return nil, err
	}
	return r.resp, nil
}

// GenerateAll writes the entity and the business layer, then both frontend
// artifacts when a root path is given. It shares one session and one index
// snapshot across all steps and stops at the first failure.
func (s *GeneratorServiceImpl) GenerateAll(ctx context.Context, req primary.FrontendRequest) (*primary.GenerateResponse, error) {
	ctx, r, err := s.begin(ctx, req.TableID, req.DryRun)
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("generating all artifacts: session=%s, table=%s", r.session.ID, r.table.TableName)

	if err := s.entity(ctx, r); err != nil {
		return r.resp, err
	}
	if err := s.businessLayer(ctx, r); err != nil {
		return r.resp, err
	}
	if req.RootPath == "" {
		klog.V(1).Infof("no frontend root, skipping vue artifacts: session=%s", r.session.ID)
		return r.resp, nil
	}
	if err := s.frontendView(ctx, r, req.RootPath); err != nil {
		return r.resp, err
	}
	if err := s.frontendAPI(ctx, r, req.RootPath); err != nil {
		return r.resp, err
	}
	return r.resp, nil
}

// begin loads and validates the table, then opens a session. Nothing touches
// the filesystem before validation succeeds.
func (s *GeneratorServiceImpl) begin(ctx context.Context, tableID string, dryRun bool) (context.Context, *run, error) {
	ctx, sessionID := ctxutil.EnsureSession(ctx)

	table, columns, err := s.load(ctx, tableID)
	if err != nil {
		return ctx, nil, err
	}

	r := &run{
		session: artifact.Session{ID: sessionID, SolutionRoot: s.projects.SolutionRoot()},
		table:   table,
		columns: columns,
		dryRun:  dryRun,
		resp:    &primary.GenerateResponse{SessionID: sessionID, DryRun: dryRun},
	}
	return ctx, r, nil
}

func (s *GeneratorServiceImpl) load(ctx context.Context, tableID string) (metadata.TableDefinition, []metadata.ColumnDefinition, error) {
	record, err := s.tableRepo.GetTable(ctx, tableID)
	if err != nil {
		return metadata.TableDefinition{}, nil, fmt.Errorf("failed to get table: %w", err)
	}

	var (
		table   *metadata.TableDefinition
		records []*secondary.ColumnRecord
	)
	if record != nil {
		t := recordToTable(record)
		table = &t
		records, err = s.tableRepo.ListColumns(ctx, tableID)
		if err != nil {
			return metadata.TableDefinition{}, nil, fmt.Errorf("failed to list columns: %w", err)
		}
	}

	result := metadata.CanGenerate(metadata.GenerateContext{
		TableID:     tableID,
		Table:       table,
		ColumnCount: len(records),
	})
	if err := result.Error(); err != nil {
		return metadata.TableDefinition{}, nil, err
	}

	columns := make([]metadata.ColumnDefinition, 0, len(records))
	for _, c := range records {
		columns = append(columns, recordToColumn(c))
	}
	return metadata.ApplyDefaults(*table), metadata.ApplyColumnDefaults(columns), nil
}

func (s *GeneratorServiceImpl) entity(ctx context.Context, r *run) error {
	if err := s.resolve(ctx, r, s.layout.RepositorySuffix, &r.session.RepositoryDir); err != nil {
		return err
	}
	return s.step(ctx, r, metadata.KindEntity, artifact.PlanEntity)
}

func (s *GeneratorServiceImpl) businessLayer(ctx context.Context, r *run) error {
	if err := s.resolve(ctx, r, s.layout.BusinessSuffix, &r.session.BusinessDir); err != nil {
		return err
	}
	if err := s.resolveStartName(ctx, r); err != nil {
		return err
	}

	steps := []struct {
		kind metadata.ArtifactKind
		plan planFunc
	}{
		{metadata.KindBusiness, artifact.PlanBusiness},
		{metadata.KindQueryRequest, artifact.PlanQueryRequest},
		{metadata.KindEditRequest, artifact.PlanEditRequest},
		{metadata.KindController, artifact.PlanController},
	}
	for _, st := range steps {
		if st.kind == metadata.KindController {
			if err := s.resolve(ctx, r, s.layout.ControllerSuffix, &r.session.WebAPIDir); err != nil {
				return err
			}
		}
		if err := s.step(ctx, r, st.kind, st.plan); err != nil {
			return err
		}
	}
	return nil
}

func (s *GeneratorServiceImpl) frontendView(ctx context.Context, r *run, root string) error {
	return s.step(ctx, r, metadata.KindVueView, func(_ artifact.Session, in artifact.Input) artifact.Plan {
		return artifact.PlanVueView(root, in)
	})
}

func (s *GeneratorServiceImpl) frontendAPI(ctx context.Context, r *run, root string) error {
	return s.step(ctx, r, metadata.KindVueAPI, func(_ artifact.Session, in artifact.Input) artifact.Plan {
		return artifact.PlanVueAPI(root, in)
	})
}

// step loads the template for kind, plans the artifact, applies the duplicate
// guard when the plan carries a guard code and executes the plan's effects.
func (s *GeneratorServiceImpl) step(ctx context.Context, r *run, kind metadata.ArtifactKind, plan planFunc) error {
	name := artifact.TemplateName(kind)
	tmpl, err := s.templates.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to load template %s: %w", name, err)
	}

	p := plan(r.session, artifact.Input{Table: r.table, Columns: r.columns, Template: tmpl})
	klog.V(2).Infof("planned artifact: session=%s, kind=%s, template=%s, path=%s", r.session.ID, kind, name, p.Path)

	if p.Guarded() {
		idx, err := s.snapshot(ctx, r)
		if err != nil {
			return err
		}
		result := module.CheckExistsModule(module.CheckModuleContext{ModuleCode: p.GuardCode, Index: idx})
		klog.V(4).Infof("duplicate guard: session=%s, code=%s, entities=%d, allowed=%t",
			r.session.ID, p.GuardCode, len(idx.Entities), result.Allowed)
		if err := result.Error(); err != nil {
			return err
		}
	}

	if !r.dryRun {
		if err := s.executor.Execute(ctx, []effects.Effect{p.Effect()}); err != nil {
			return fmt.Errorf("failed to write %s: %w", p.Path, err)
		}
	}

	r.resp.Artifacts = append(r.resp.Artifacts, primary.Artifact{Kind: kind, Path: p.Path, Bytes: len(p.Content)})
	return nil
}

// snapshot fetches the generated-entity index once per run.
func (s *GeneratorServiceImpl) snapshot(ctx context.Context, r *run) (module.Index, error) {
	if r.index != nil {
		return *r.index, nil
	}
	records, err := s.index.Snapshot(ctx)
	if err != nil {
		return module.Index{}, fmt.Errorf("failed to read entity index: %w", err)
	}
	idx := module.Index{Entities: make([]module.GeneratedEntity, 0, len(records))}
	for _, rec := range records {
		idx.Entities = append(idx.Entities, module.GeneratedEntity{
			ClassName: rec.ClassName,
			TableName: rec.TableName,
			Source:    rec.Source,
		})
	}
	r.index = &idx
	return idx, nil
}

// resolve locates the project with the given suffix on first need and stores
// its directory in dst.
func (s *GeneratorServiceImpl) resolve(ctx context.Context, r *run, suffix string, dst *string) error {
	if *dst != "" {
		return nil
	}
	dir, err := s.projects.FindBySuffix(ctx, suffix)
	if err != nil {
		return err
	}
	*dst = dir
	klog.V(4).Infof("resolved project: session=%s, suffix=%s, dir=%s", r.session.ID, suffix, dir)
	return nil
}

func (s *GeneratorServiceImpl) resolveStartName(ctx context.Context, r *run) error {
	if r.session.StartName != "" {
		return nil
	}
	dir, err := s.projects.FindBySuffix(ctx, s.layout.WebAPISuffixes...)
	if err != nil {
		return err
	}
	r.session.StartName = artifact.StartNameOf(dir)
	return nil
}

func recordToTable(r *secondary.TableRecord) metadata.TableDefinition {
	return metadata.TableDefinition{
		ID:              r.ID,
		TableName:       r.TableName,
		ClassName:       r.ClassName,
		ModuleCode:      r.ModuleCode,
		ModuleName:      r.ModuleName,
		Namespace:       r.Namespace,
		Folder:          r.Folder,
		Comment:         r.Comment,
		DetailTableName: r.DetailTableName,
		DetailComment:   r.DetailComment,
		TypeID:          r.TypeID,
		TypeName:        r.TypeName,
		CreateTime:      r.CreateTime,
		CreateUserID:    r.CreateUserID,
		CreateUserName:  r.CreateUserName,
		UpdateTime:      r.UpdateTime,
		UpdateUserID:    r.UpdateUserID,
		UpdateUserName:  r.UpdateUserName,
	}
}

func recordToColumn(r *secondary.ColumnRecord) metadata.ColumnDefinition {
	return metadata.ColumnDefinition{
		ID:         r.ID,
		TableID:    r.TableID,
		ColumnName: r.ColumnName,
		EntityName: r.EntityName,
		Comment:    r.Comment,
		ColumnType: r.ColumnType,
		EntityType: r.EntityType,
		MaxLength:  r.MaxLength,
		IsKey:      r.IsKey,
		IsRequired: r.IsRequired,
		IsEdit:     r.IsEdit,
		IsInsert:   r.IsInsert,
		IsList:     r.IsList,
		EditType:   r.EditType,
		Sort:       r.Sort,
	}
}
