package cfnschema

import (
	"fmt"

	"github.com/kstich/cfnschema/jsonschema"
	"github.com/kstich/cfnschema/mapper"
	"github.com/kstich/cfnschema/model"
	"github.com/kstich/cfnschema/resourceschema"
	"github.com/kstich/cfnschema/synth"
	"github.com/kstich/cfnschema/traits"
)

// ConvertedResource is one resource's finished output: the type name it
// was resolved to, the structured document that produced it, and the
// fully mapped node tree ready for serialization.
type ConvertedResource struct {
	TypeName string
	Document *resourceschema.Document
	Node     *resourceschema.Node
}

// Converter turns every resource reachable from a configured service into
// a CloudFormation resource schema document.
type Converter struct {
	cfg       Config
	schemaGen jsonschema.Converter
	pipeline  *mapper.Pipeline
}

// NewConverter builds a Converter. An explicit jsonschema.Converter may be
// supplied via WithSchemaConverter; otherwise a DefaultConverter configured
// from cfg is used.
func NewConverter(cfg Config) *Converter {
	cfg = cfg.withDefaults()
	return &Converter{
		cfg:       cfg,
		schemaGen: jsonschema.NewDefaultConverter(jsonschema.Options{DefaultBlobFormat: cfg.DefaultBlobFormat}),
		pipeline: mapper.NewPipeline(
			mapper.DeprecatedMapper{},
			mapper.DocumentationMapper{},
			mapper.IdentifierMapper{},
			mapper.MutabilityMapper{},
			mapper.JSONAddMapper{},
		),
	}
}

// WithSchemaConverter overrides the shape-to-schema converter used for
// every resource's properties.
func (c *Converter) WithSchemaConverter(conv jsonschema.Converter) *Converter {
	c.schemaGen = conv
	return c
}

// Convert derives and renders every resource transitively reachable from
// the configured service, in the order the service (and any nested
// resources) declare them.
func (c *Converter) Convert(m *model.Model) ([]*ConvertedResource, error) {
	if err := c.cfg.validate(); err != nil {
		return nil, err
	}
	service, ok := m.Service(c.cfg.Service)
	if !ok {
		return nil, shapeNotFound(c.cfg.Service)
	}

	idx := traits.NewResourceIndex(m)
	resources := m.GetTransitiveResources(c.cfg.Service)

	out := make([]*ConvertedResource, 0, len(resources))
	for _, resource := range resources {
		converted, err := c.convertResource(m, service, resource, idx)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func (c *Converter) convertResource(
	m *model.Model,
	service *model.ServiceShape,
	resource *model.ResourceShape,
	idx *traits.ResourceIndex,
) (*ConvertedResource, *Error) {
	if _, ok := model.GetShapeTrait[traits.DocumentationTraitValue](resource, traits.DocumentationTraitID); !ok {
		return nil, missingDescription(resource.ID)
	}

	typeName, err := c.resolveResourceTypeName(service, resource)
	if err != nil {
		return nil, err
	}

	if len(idx.GetProperties(resource.ID)) == 0 {
		return nil, emptyProperties(typeName)
	}

	pseudoStructure := synth.BuildPseudoStructure(resource.ID, idx)
	schemaDoc, convErr := c.schemaGen.Convert(m, pseudoStructure)
	if convErr != nil {
		return nil, shapeTypeMismatch(resource.ID, "structure")
	}

	ctx := &mapper.Context{
		Model:      m,
		ResourceID: resource.ID,
		Index:      idx,
		Options: mapper.Options{
			DisableDeprecatedPropertyGeneration: c.cfg.DisableDeprecatedPropertyGeneration,
			DisableCapitalizedProperties:        c.cfg.DisableCapitalizedProperties,
			ExternalDocKeys:                     c.cfg.ExternalDocKeys,
			SourceDocKeys:                       c.cfg.SourceDocKeys,
			JSONAdd:                             c.cfg.JSONAdd,
			JSONAddOrder:                        c.cfg.JSONAddOrder,
		},
	}

	doc := resourceschema.NewDocument(typeName)
	c.pipeline.RunBefore(ctx, doc)

	root := schemaDoc.RootSchema
	for _, name := range root.PropertyOrder {
		doc.SetProperty(ctx.ResolvedPropertyName(name), &resourceschema.Property{Schema: root.Properties[name]})
	}
	for _, name := range schemaDoc.DefinitionOrder {
		doc.SetDefinition(name, schemaDoc.Definitions[name])
	}

	c.pipeline.RunAfter(ctx, doc)

	node := doc.ToNode()
	node = c.pipeline.RunUpdateNode(ctx, doc, node)

	return &ConvertedResource{TypeName: typeName, Document: doc, Node: node}, nil
}

// resolveResourceTypeName builds the Org::Service::Resource type name for
// resource, using the resource trait's name override if present and
// falling back to the service's configured or modeled name.
func (c *Converter) resolveResourceTypeName(service *model.ServiceShape, resource *model.ResourceShape) (string, *Error) {
	serviceName := c.cfg.ServiceName
	if serviceName == "" {
		serviceName = service.ID.Name
	}
	resourceName := resource.ID.Name
	if resourceTrait, ok := model.GetShapeTrait[traits.ResourceTraitValue](resource, traits.ResourceTraitID); ok && resourceTrait.Name != "" {
		resourceName = resourceTrait.Name
	}
	return fmt.Sprintf("%s::%s::%s", c.cfg.OrganizationName, serviceName, resourceName), nil
}
