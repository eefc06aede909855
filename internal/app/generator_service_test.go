package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/tablegen/internal/core/effects"
	"github.com/example/tablegen/internal/core/metadata"
	"github.com/example/tablegen/internal/ctxutil"
	"github.com/example/tablegen/internal/ports/primary"
	"github.com/example/tablegen/internal/ports/secondary"
)

// mockTableRepository implements secondary.TableRepository for testing.
type mockTableRepository struct {
	tables  map[string]*secondary.TableRecord
	columns map[string][]*secondary.ColumnRecord
	calls   int
}

func newMockTableRepository() *mockTableRepository {
	return &mockTableRepository{
		tables:  make(map[string]*secondary.TableRecord),
		columns: make(map[string][]*secondary.ColumnRecord),
	}
}

func (m *mockTableRepository) GetTable(ctx context.Context, id string) (*secondary.TableRecord, error) {
	m.calls++
	if t, ok := m.tables[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, nil
}

func (m *mockTableRepository) ListColumns(ctx context.Context, tableID string) ([]*secondary.ColumnRecord, error) {
	return m.columns[tableID], nil
}

// mockEntityIndex implements secondary.EntityIndex for testing.
type mockEntityIndex struct {
	records []secondary.EntityRecord
	calls   int
}

func (m *mockEntityIndex) Snapshot(ctx context.Context) ([]secondary.EntityRecord, error) {
	m.calls++
	return m.records, nil
}

// mockTemplateStore implements secondary.TemplateStore for testing.
type mockTemplateStore struct {
	bodies map[string]string
}

func (m *mockTemplateStore) Load(ctx context.Context, name string) (string, error) {
	if body, ok := m.bodies[name]; ok {
		return body, nil
	}
	return "", fmt.Errorf("%w: %s", metadata.ErrTemplateNotFound, name)
}

func (m *mockTemplateStore) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(m.bodies))
	for name := range m.bodies {
		names = append(names, name)
	}
	return names, nil
}

// mockProjectLocator implements secondary.ProjectLocator for testing.
type mockProjectLocator struct {
	root  string
	dirs  map[string]string
	calls int
}

func (m *mockProjectLocator) SolutionRoot() string { return m.root }

func (m *mockProjectLocator) FindBySuffix(ctx context.Context, suffixes ...string) (string, error) {
	m.calls++
	for _, suffix := range suffixes {
		if dir, ok := m.dirs[suffix]; ok {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%w: %v", metadata.ErrProjectNotFound, suffixes)
}

// recordingExecutor collects file effects and log messages instead of
// executing them. Composites are flattened.
type recordingExecutor struct {
	effects []effects.Effect
	logs    []string
}

func (m *recordingExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, e := range effs {
		switch typed := e.(type) {
		case effects.CompositeEffect:
			if err := m.Execute(ctx, typed.Effects); err != nil {
				return err
			}
		case effects.LogEffect:
			m.logs = append(m.logs, typed.Message)
		default:
			m.effects = append(m.effects, e)
		}
	}
	return nil
}

func (m *recordingExecutor) writes() []string {
	var paths []string
	for _, e := range m.effects {
		if fe, ok := e.(effects.FileEffect); ok && fe.Operation == effects.FileWrite {
			paths = append(paths, fe.Path)
		}
	}
	return paths
}

func testTemplates() *mockTemplateStore {
	return &mockTemplateStore{bodies: map[string]string{
		"DomainModel":    "{AttributeManager}\npublic class {ClassName} : Entity\n{\n{Construction}\n{AttributeList}\n}\n",
		"BuildApp":       "namespace {StartName}.App\npublic class {ModuleCode} // {ModuleName}\n",
		"BuildQueryReq":  "namespace {StartName}.App.Request\npublic class Query{ClassName}ListReq\n",
		"BuildUpdateReq": "namespace {StartName}.App.Request\n{AttributeManager}\npublic class AddOrUpdate{ClassName}Req\n{AttributeList}\n",
		"ControllerApi":  "namespace {StartName}.WebApi.Controllers\npublic class {ClassName}sController\n",
		"BuildVue":       "<template>\n{DialogFormItem}</template>\ntemp: {\n{Temp}}\nimport * as {TableName}s\n",
		"BuildVueApi":    "url: '/{TableName}s/load'\n",
	}}
}

func ordersRepository() *mockTableRepository {
	repo := newMockTableRepository()
	repo.tables["T1"] = &secondary.TableRecord{
		ID:         "T1",
		TableName:  "orders",
		ModuleCode: "OrderApp",
		ModuleName: "OrderMgmt",
		Namespace:  "App.Order",
		ClassName:  "Order",
		Comment:    "Customer orders",
	}
	repo.columns["T1"] = []*secondary.ColumnRecord{
		{ColumnName: "id", EntityType: "string", IsKey: true, Sort: 3},
		{ColumnName: "total", EntityType: "decimal", IsRequired: true, IsEdit: true, Comment: "Total", Sort: 2},
		{ColumnName: "note", EntityType: "string", IsEdit: true, Comment: "Note", Sort: 1},
	}
	return repo
}

func solutionLocator(root string) *mockProjectLocator {
	return &mockProjectLocator{
		root: root,
		dirs: map[string]string{
			".App":        filepath.Join(root, "Acme.App"),
			".Repository": filepath.Join(root, "Acme.Repository"),
			".WebApi":     filepath.Join(root, "Acme.WebApi"),
		},
	}
}

func newTestGeneratorService(repo *mockTableRepository, index *mockEntityIndex, locator *mockProjectLocator, exec EffectExecutor) *GeneratorServiceImpl {
	return NewGeneratorService(repo, index, testTemplates(), locator, exec, DefaultProjectLayout())
}

func TestGenerateEntity_OrdersExample(t *testing.T) {
	root := t.TempDir()
	service := newTestGeneratorService(ordersRepository(), &mockEntityIndex{}, solutionLocator(root), NewEffectExecutor())

	resp, err := service.GenerateEntity(context.Background(), primary.GenerateRequest{TableID: "T1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resp.Artifacts) != 1 {
		t.Fatalf("expected 1 artifact, got %d", len(resp.Artifacts))
	}

	path := filepath.Join(root, "Acme.Repository", "Domain", "Order.cs")
	if resp.Artifacts[0].Path != path {
		t.Errorf("expected path %q, got %q", path, resp.Artifacts[0].Path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected entity file to be written: %v", err)
	}
	content := string(data)

	if got := strings.Count(content, "{ get; set; }"); got != 2 {
		t.Errorf("expected 2 declarations, got %d:\n%s", got, content)
	}
	if strings.Contains(content, " id ") {
		t.Error("key column must not be declared")
	}
	if !strings.Contains(content, "public decimal total { get; set; }") {
		t.Errorf("expected non-nullable total, got:\n%s", content)
	}
	if !strings.Contains(content, "public string note { get; set; }") {
		t.Errorf("expected non-nullable note, got:\n%s", content)
	}
	if strings.Index(content, "decimal total") > strings.Index(content, "string note") {
		t.Error("expected total before note")
	}
	if !strings.Contains(content, `[Table("orders")]`) {
		t.Error("expected table attribute")
	}
	if resp.Artifacts[0].Bytes != len(data) {
		t.Errorf("expected %d bytes reported, got %d", len(data), resp.Artifacts[0].Bytes)
	}
}

func TestGenerateEntity_DuplicateClass(t *testing.T) {
	repo := ordersRepository()
	repo.tables["T1"].ClassName = "Foo"
	repo.tables["T1"].TableName = "foo_v2"
	index := &mockEntityIndex{records: []secondary.EntityRecord{{ClassName: "Foo", TableName: "foo"}}}
	exec := &recordingExecutor{}
	service := newTestGeneratorService(repo, index, solutionLocator("/sln"), exec)

	_, err := service.GenerateEntity(context.Background(), primary.GenerateRequest{TableID: "T1"})
	if !errors.Is(err, metadata.ErrDuplicateModule) {
		t.Fatalf("expected ErrDuplicateModule, got %v", err)
	}
	if !strings.Contains(err.Error(), `"Foo"`) {
		t.Errorf("expected error to name the module, got %q", err.Error())
	}
	if len(exec.effects) != 0 {
		t.Errorf("expected no effects, got %d", len(exec.effects))
	}
}

func TestGenerateEntity_ValidationBeforeFilesystem(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*secondary.TableRecord)
		wantErr error
	}{
		{
			name:    "empty table name",
			mutate:  func(r *secondary.TableRecord) { r.TableName = "" },
			wantErr: metadata.ErrValidation,
		},
		{
			name:    "empty module name",
			mutate:  func(r *secondary.TableRecord) { r.ModuleName = "" },
			wantErr: metadata.ErrValidation,
		},
		{
			name:    "empty namespace",
			mutate:  func(r *secondary.TableRecord) { r.Namespace = "" },
			wantErr: metadata.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := ordersRepository()
			tt.mutate(repo.tables["T1"])
			locator := solutionLocator("/sln")
			exec := &recordingExecutor{}
			service := newTestGeneratorService(repo, &mockEntityIndex{}, locator, exec)

			_, err := service.GenerateEntity(context.Background(), primary.GenerateRequest{TableID: "T1"})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if locator.calls != 0 {
				t.Errorf("expected no project lookups, got %d", locator.calls)
			}
			if len(exec.effects) != 0 {
				t.Errorf("expected no effects, got %d", len(exec.effects))
			}
		})
	}
}

func TestGenerateEntity_MissingData(t *testing.T) {
	repo := ordersRepository()
	repo.tables["T2"] = &secondary.TableRecord{ID: "T2", TableName: "empty", ModuleName: "M", Namespace: "N"}
	service := newTestGeneratorService(repo, &mockEntityIndex{}, solutionLocator("/sln"), &recordingExecutor{})

	_, err := service.GenerateEntity(context.Background(), primary.GenerateRequest{TableID: "missing"})
	if !errors.Is(err, metadata.ErrMissingTemplateData) {
		t.Errorf("unknown table: expected ErrMissingTemplateData, got %v", err)
	}

	_, err = service.GenerateEntity(context.Background(), primary.GenerateRequest{TableID: "T2"})
	if !errors.Is(err, metadata.ErrMissingTemplateData) {
		t.Errorf("no columns: expected ErrMissingTemplateData, got %v", err)
	}
}

func TestGenerateEntity_ProjectNotFound(t *testing.T) {
	locator := &mockProjectLocator{root: "/sln", dirs: map[string]string{}}
	service := newTestGeneratorService(ordersRepository(), &mockEntityIndex{}, locator, &recordingExecutor{})

	_, err := service.GenerateEntity(context.Background(), primary.GenerateRequest{TableID: "T1"})
	if !errors.Is(err, metadata.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestGenerateEntity_TemplateNotFound(t *testing.T) {
	service := NewGeneratorService(ordersRepository(), &mockEntityIndex{}, &mockTemplateStore{},
		solutionLocator("/sln"), &recordingExecutor{}, DefaultProjectLayout())

	_, err := service.GenerateEntity(context.Background(), primary.GenerateRequest{TableID: "T1"})
	if !errors.Is(err, metadata.ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestGenerateEntity_DryRun(t *testing.T) {
	exec := &recordingExecutor{}
	index := &mockEntityIndex{}
	service := newTestGeneratorService(ordersRepository(), index, solutionLocator("/sln"), exec)

	resp, err := service.GenerateEntity(context.Background(), primary.GenerateRequest{TableID: "T1", DryRun: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !resp.DryRun || len(resp.Artifacts) != 1 {
		t.Fatalf("expected one planned artifact, got %+v", resp)
	}
	if len(exec.effects) != 0 {
		t.Errorf("dry run must not execute effects, got %d", len(exec.effects))
	}
	if index.calls != 1 {
		t.Errorf("dry run must still evaluate the guard, index calls = %d", index.calls)
	}
}

func TestGenerateEntity_KeepsSessionFromContext(t *testing.T) {
	service := newTestGeneratorService(ordersRepository(), &mockEntityIndex{}, solutionLocator("/sln"), &recordingExecutor{})
	ctx := ctxutil.WithSessionID(context.Background(), "session-1")

	resp, err := service.GenerateEntity(ctx, primary.GenerateRequest{TableID: "T1", DryRun: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.SessionID != "session-1" {
		t.Errorf("expected session-1, got %q", resp.SessionID)
	}
}

func TestGenerateBusinessLayer(t *testing.T) {
	exec := &recordingExecutor{}
	service := newTestGeneratorService(ordersRepository(), &mockEntityIndex{}, solutionLocator("/sln"), exec)

	resp, err := service.GenerateBusinessLayer(context.Background(), primary.GenerateRequest{TableID: "T1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{
		filepath.Join("/sln", "Acme.App", "OrderApp.cs"),
		filepath.Join("/sln", "Acme.App", "Request", "QueryOrderListReq.cs"),
		filepath.Join("/sln", "Acme.App", "Request", "AddOrUpdateOrderReq.cs"),
		filepath.Join("/sln", "Acme.WebApi", "Controllers", "OrdersController.cs"),
	}
	got := exec.writes()
	if len(got) != len(want) {
		t.Fatalf("expected %d writes, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("write %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	kinds := []metadata.ArtifactKind{metadata.KindBusiness, metadata.KindQueryRequest, metadata.KindEditRequest, metadata.KindController}
	for i, kind := range kinds {
		if resp.Artifacts[i].Kind != kind {
			t.Errorf("artifact %d: expected %s, got %s", i, kind, resp.Artifacts[i].Kind)
		}
	}

	business := exec.effects[1].(effects.FileEffect)
	if !strings.Contains(string(business.Content), "namespace Acme.App") {
		t.Errorf("expected StartName Acme, got:\n%s", business.Content)
	}
	if len(exec.logs) != len(want) {
		t.Errorf("expected one log line per artifact, got %v", exec.logs)
	}
	if !strings.Contains(exec.logs[0], "business") || !strings.Contains(exec.logs[0], want[0]) {
		t.Errorf("unexpected log line %q", exec.logs[0])
	}
}

func TestGenerateBusinessLayer_ControllerDuplicate(t *testing.T) {
	exec := &recordingExecutor{}
	index := &mockEntityIndex{records: []secondary.EntityRecord{{ClassName: "OrdersController"}}}
	service := newTestGeneratorService(ordersRepository(), index, solutionLocator("/sln"), exec)

	resp, err := service.GenerateBusinessLayer(context.Background(), primary.GenerateRequest{TableID: "T1"})
	if !errors.Is(err, metadata.ErrDuplicateModule) {
		t.Fatalf("expected ErrDuplicateModule, got %v", err)
	}
	if got := len(exec.writes()); got != 3 {
		t.Errorf("expected earlier steps to stay written, got %d writes", got)
	}
	if len(resp.Artifacts) != 3 {
		t.Errorf("expected 3 artifacts reported, got %d", len(resp.Artifacts))
	}
	if index.calls != 1 {
		t.Errorf("expected one index snapshot, got %d", index.calls)
	}
}

func TestGenerateBusinessLayer_BusinessDuplicateWritesNothing(t *testing.T) {
	exec := &recordingExecutor{}
	index := &mockEntityIndex{records: []secondary.EntityRecord{{ClassName: "Order", TableName: "OrderApp"}}}
	service := newTestGeneratorService(ordersRepository(), index, solutionLocator("/sln"), exec)

	_, err := service.GenerateBusinessLayer(context.Background(), primary.GenerateRequest{TableID: "T1"})
	if !errors.Is(err, metadata.ErrDuplicateModule) {
		t.Fatalf("expected ErrDuplicateModule, got %v", err)
	}
	if len(exec.effects) != 0 {
		t.Errorf("expected no effects, got %d", len(exec.effects))
	}
}

func TestGenerateBusinessLayer_WebProjectFallback(t *testing.T) {
	exec := &recordingExecutor{}
	locator := &mockProjectLocator{
		root: "/sln",
		dirs: map[string]string{
			".App": filepath.Join("/sln", "Contoso.App"),
			".Mvc": filepath.Join("/sln", "Contoso.Mvc"),
		},
	}
	service := newTestGeneratorService(ordersRepository(), &mockEntityIndex{}, locator, exec)

	_, err := service.GenerateBusinessLayer(context.Background(), primary.GenerateRequest{TableID: "T1"})
	if !errors.Is(err, metadata.ErrProjectNotFound) {
		t.Fatalf("expected controller project lookup to fail, got %v", err)
	}

	writes := exec.writes()
	if len(writes) != 3 {
		t.Fatalf("expected 3 writes before the controller step, got %v", writes)
	}
	query := exec.effects[3].(effects.FileEffect)
	if !strings.Contains(string(query.Content), "namespace Contoso.App.Request") {
		t.Errorf("expected StartName from the .Mvc project, got:\n%s", query.Content)
	}
}

func TestGenerateFrontendView_EmptyRoot(t *testing.T) {
	repo := ordersRepository()
	exec := &recordingExecutor{}
	service := newTestGeneratorService(repo, &mockEntityIndex{}, solutionLocator("/sln"), exec)

	_, err := service.GenerateFrontendView(context.Background(), primary.FrontendRequest{TableID: "T1"})
	if !errors.Is(err, metadata.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if repo.calls != 0 {
		t.Errorf("expected no metadata lookup, got %d", repo.calls)
	}
	if len(exec.effects) != 0 {
		t.Errorf("expected no effects, got %d", len(exec.effects))
	}

	_, err = service.GenerateFrontendAPIClient(context.Background(), primary.FrontendRequest{TableID: "T1"})
	if !errors.Is(err, metadata.ErrValidation) {
		t.Errorf("api client: expected ErrValidation, got %v", err)
	}
}

func TestGenerateFrontendView(t *testing.T) {
	root := t.TempDir()
	service := newTestGeneratorService(ordersRepository(), &mockEntityIndex{}, solutionLocator("/sln"), NewEffectExecutor())

	resp, err := service.GenerateFrontendView(context.Background(), primary.FrontendRequest{TableID: "T1", RootPath: root})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	path := filepath.Join(root, "src", "views", "orders", "index.vue")
	if resp.Artifacts[0].Path != path {
		t.Errorf("expected %q, got %q", path, resp.Artifacts[0].Path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected view to be written: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "import * as orders") {
		t.Errorf("expected camel-cased module import, got:\n%s", content)
	}
	if !strings.Contains(content, "total: 0") && !strings.Contains(content, "total: ''") {
		t.Errorf("expected total in temp block, got:\n%s", content)
	}
	if strings.Contains(content, "prop=\"id\"") {
		t.Error("key column must not appear in the dialog")
	}
}

func TestGenerateFrontendAPIClient(t *testing.T) {
	exec := &recordingExecutor{}
	service := newTestGeneratorService(ordersRepository(), &mockEntityIndex{}, solutionLocator("/sln"), exec)

	resp, err := service.GenerateFrontendAPIClient(context.Background(), primary.FrontendRequest{TableID: "T1", RootPath: "/web"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := filepath.Join("/web", "src", "api", "orders.js")
	if resp.Artifacts[0].Path != want {
		t.Errorf("expected %q, got %q", want, resp.Artifacts[0].Path)
	}
	api := exec.effects[1].(effects.FileEffect)
	if string(api.Content) != "url: '/orders/load'\n" {
		t.Errorf("unexpected content %q", api.Content)
	}
}

func TestGenerateAll(t *testing.T) {
	tests := []struct {
		name      string
		root      string
		wantCount int
	}{
		{name: "backend only", root: "", wantCount: 5},
		{name: "with frontend", root: "/web", wantCount: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &recordingExecutor{}
			index := &mockEntityIndex{}
			service := newTestGeneratorService(ordersRepository(), index, solutionLocator("/sln"), exec)

			resp, err := service.GenerateAll(context.Background(), primary.FrontendRequest{TableID: "T1", RootPath: tt.root})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(resp.Artifacts) != tt.wantCount {
				t.Errorf("expected %d artifacts, got %d", tt.wantCount, len(resp.Artifacts))
			}
			if len(exec.writes()) != tt.wantCount {
				t.Errorf("expected %d writes, got %d", tt.wantCount, len(exec.writes()))
			}
			if index.calls != 1 {
				t.Errorf("expected one index snapshot, got %d", index.calls)
			}
			if resp.Artifacts[0].Kind != metadata.KindEntity {
				t.Errorf("expected entity first, got %s", resp.Artifacts[0].Kind)
			}
		})
	}
}
