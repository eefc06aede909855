package artifact

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/example/tablegen/internal/core/effects"
	"github.com/example/tablegen/internal/core/metadata"
	"github.com/example/tablegen/internal/core/projection"
	"github.com/example/tablegen/internal/core/render"
)

// Template names, one per artifact kind.
const (
	TemplateEntity       = "DomainModel"
	TemplateBusiness     = "BuildApp"
	TemplateQueryRequest = "BuildQueryReq"
	TemplateEditRequest  = "BuildUpdateReq"
	TemplateController   = "ControllerApi"
	TemplateVueView      = "BuildVue"
	TemplateVueAPI       = "BuildVueApi"
)

var templateNames = map[metadata.ArtifactKind]string{
	metadata.KindEntity:       TemplateEntity,
	metadata.KindBusiness:     TemplateBusiness,
	metadata.KindQueryRequest: TemplateQueryRequest,
	metadata.KindEditRequest:  TemplateEditRequest,
	metadata.KindController:   TemplateController,
	metadata.KindVueView:      TemplateVueView,
	metadata.KindVueAPI:       TemplateVueAPI,
}

// TemplateName returns the template used for an artifact kind.
func TemplateName(kind metadata.ArtifactKind) string {
	return templateNames[kind]
}

// Input is the pre-fetched data for one planner.
// Table must already have its defaults applied.
type Input struct {
	Table    metadata.TableDefinition
	Columns  []metadata.ColumnDefinition
	Template string
}

// Plan represents the planned effects for one artifact.
type Plan struct {
	Kind      metadata.ArtifactKind
	Path      string
	GuardCode string // module code checked by the duplicate guard; empty when unguarded
	Content   []byte
	FileOps   []effects.FileEffect
}

// Effect returns the artifact's effects as one composite: a log line
// followed by the file operations in order.
func (p Plan) Effect() effects.Effect {
	children := make([]effects.Effect, 0, len(p.FileOps)+1)
	children = append(children, effects.LogEffect{
		Level:   2,
		Message: fmt.Sprintf("writing %s artifact: path=%s, bytes=%d", p.Kind, p.Path, len(p.Content)),
	})
	for _, e := range p.FileOps {
		children = append(children, e)
	}
	return effects.CompositeEffect{Effects: children}
}

// Guarded reports whether the plan must pass the duplicate-module guard.
func (p Plan) Guarded() bool {
	return p.GuardCode != ""
}

// ControllerName returns the controller type name for a class.
func ControllerName(className string) string {
	return className + "sController"
}

// Values returns the placeholder bindings the planner for kind supplies.
// Frontend kinds ignore the session.
func Values(kind metadata.ArtifactKind, s Session, in Input) render.Values {
	t := in.Table
	switch kind {
	case metadata.KindEntity:
		p := projection.Project(in.Columns, metadata.KindEntity)
		attr := projection.DocComment(t.Comment, projection.ClassIndent) + "\n" +
			projection.ClassIndent + `[Table("` + t.TableName + `")]`
		return render.Values{}.
			Add("ClassName", t.ClassName).
			Add("AttributeList", p.Fields).
			Add("Construction", p.Init).
			Add("AttributeManager", attr).
			Add("Namespace", t.Namespace).
			Add("TableName", t.TableName).
			Add("TableComment", t.Comment)
	case metadata.KindEditRequest:
		p := projection.Project(in.Columns, metadata.KindEditRequest)
		return render.Values{}.
			Add("ClassName", t.ClassName).
			Add("AttributeList", p.Fields).
			Add("AttributeManager", projection.DocComment(t.Comment, projection.ClassIndent)).
			Add("Namespace", t.Namespace).
			Add("StartName", s.StartName).
			Add("TableComment", t.Comment)
	case metadata.KindVueView:
		p := projection.Project(in.Columns, metadata.KindVueView)
		return render.Values{}.
			Add("ClassName", t.ClassName).
			Add("TableName", projection.CamelCase(t.ClassName)).
			Add("Temp", p.Init).
			Add("DialogFormItem", p.Fields)
	case metadata.KindVueAPI:
		return render.Values{}.Add("TableName", projection.CamelCase(t.ClassName))
	default:
		return tableValues(s, t)
	}
}

// PlanEntity plans the entity model under <RepositoryDir>/Domain/<Folder>.
func PlanEntity(s Session, in Input) Plan {
	t := in.Table
	dir := filepath.Join(s.RepositoryDir, "Domain", folderPath(t.Folder))
	return newPlan(metadata.KindEntity, dir, t.ClassName+".cs", t.ClassName,
		render.Render(in.Template, Values(metadata.KindEntity, s, in)))
}

// PlanBusiness plans the business-logic class under <BusinessDir>.
func PlanBusiness(s Session, in Input) Plan {
	t := in.Table
	return newPlan(metadata.KindBusiness, s.BusinessDir, t.ModuleCode+".cs", t.ModuleCode,
		render.Render(in.Template, Values(metadata.KindBusiness, s, in)))
}

// PlanQueryRequest plans the list-query request under <BusinessDir>/Request.
func PlanQueryRequest(s Session, in Input) Plan {
	t := in.Table
	return newPlan(metadata.KindQueryRequest, filepath.Join(s.BusinessDir, "Request"),
		"Query"+t.ClassName+"ListReq.cs", "", render.Render(in.Template, Values(metadata.KindQueryRequest, s, in)))
}

// PlanEditRequest plans the add/update request under <BusinessDir>/Request.
func PlanEditRequest(s Session, in Input) Plan {
	t := in.Table
	return newPlan(metadata.KindEditRequest, filepath.Join(s.BusinessDir, "Request"),
		"AddOrUpdate"+t.ClassName+"Req.cs", "", render.Render(in.Template, Values(metadata.KindEditRequest, s, in)))
}

// PlanController plans the API controller under <WebAPIDir>/Controllers.
func PlanController(s Session, in Input) Plan {
	name := ControllerName(in.Table.ClassName)
	return newPlan(metadata.KindController, filepath.Join(s.WebAPIDir, "Controllers"),
		name+".cs", name, render.Render(in.Template, Values(metadata.KindController, s, in)))
}

// PlanVueView plans the Vue page under <root>/src/views/<camelClass>s.
func PlanVueView(root string, in Input) Plan {
	camel := projection.CamelCase(in.Table.ClassName)
	return newPlan(metadata.KindVueView, filepath.Join(root, "src", "views", camel+"s"),
		"index.vue", "", render.Render(in.Template, Values(metadata.KindVueView, Session{}, in)))
}

// PlanVueAPI plans the Vue API client under <root>/src/api.
func PlanVueAPI(root string, in Input) Plan {
	camel := projection.CamelCase(in.Table.ClassName)
	return newPlan(metadata.KindVueAPI, filepath.Join(root, "src", "api"),
		camel+"s.js", "", render.Render(in.Template, Values(metadata.KindVueAPI, Session{}, in)))
}

// tableValues are the table-level tokens shared by artifacts that do not
// iterate columns.
func tableValues(s Session, t metadata.TableDefinition) render.Values {
	return render.Values{}.
		Add("TableName", t.TableName).
		Add("ModuleCode", t.ModuleCode).
		Add("ModuleName", t.ModuleName).
		Add("ClassName", t.ClassName).
		Add("StartName", s.StartName).
		Add("Namespace", t.Namespace).
		Add("TableComment", t.Comment)
}

func newPlan(kind metadata.ArtifactKind, dir, file, guardCode, content string) Plan {
	path := filepath.Join(dir, file)
	body := []byte(content)
	return Plan{
		Kind:      kind,
		Path:      path,
		GuardCode: guardCode,
		Content:   body,
		FileOps: []effects.FileEffect{
			{Operation: effects.FileMkdir, Path: dir, Mode: 0755},
			{Operation: effects.FileWrite, Path: path, Content: body, Mode: 0644},
		},
	}
}

// folderPath normalizes an optional subfolder that may use either separator.
func folderPath(folder string) string {
	return filepath.FromSlash(strings.ReplaceAll(strings.Trim(folder, `\/`), `\`, "/"))
}
