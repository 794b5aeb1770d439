package yang

import (
	"github.com/specialistvlad/yangkit/internal/registry"
	"github.com/specialistvlad/yangkit/internal/scheduler"
	"github.com/specialistvlad/yangkit/internal/stmt"
)

// Bundle registers the RFC 7950 statements. Recognized extensions live in
// their own modules.
type Bundle struct{}

type registration struct {
	kind    stmt.Kind
	since   scheduler.Phase
	support stmt.Support
}

var registrations = []registration{
	// pre-linkage: identities and own prefixes
	{stmt.KindModule, scheduler.PreLinkage, moduleSupport{}},
	{stmt.KindSubmodule, scheduler.PreLinkage, submoduleSupport{}},
	{stmt.KindYangVersion, scheduler.PreLinkage, versionArgument},
	{stmt.KindNamespace, scheduler.PreLinkage, rawArgument},
	{stmt.KindPrefix, scheduler.PreLinkage, identifierArgument},
	{stmt.KindBelongsTo, scheduler.PreLinkage, argumentSupport{parse: parseModuleName}},
	{stmt.KindRevision, scheduler.PreLinkage, dateArgument},

	// linkage
	{stmt.KindImport, scheduler.Linkage, importSupport{}},
	{stmt.KindInclude, scheduler.Linkage, includeSupport{}},
	{stmt.KindRevisionDate, scheduler.Linkage, dateArgument},

	// statement definition
	{stmt.KindExtension, scheduler.StatementDefinition, extensionSupport{}},
	{stmt.KindArgument, scheduler.StatementDefinition, identifierArgument},
	{stmt.KindYinElement, scheduler.StatementDefinition, booleanArgument},

	// full declaration
	{stmt.KindOrganization, scheduler.FullDeclaration, rawArgument},
	{stmt.KindContact, scheduler.FullDeclaration, rawArgument},
	{stmt.KindDescription, scheduler.FullDeclaration, rawArgument},
	{stmt.KindReference, scheduler.FullDeclaration, rawArgument},
	{stmt.KindStatus, scheduler.FullDeclaration, statusArgument},
	{stmt.KindFeature, scheduler.FullDeclaration, featureSupport{}},
	{stmt.KindIfFeature, scheduler.FullDeclaration, ifFeatureSupport{}},
	{stmt.KindIdentity, scheduler.FullDeclaration, identifierArgument},
	{stmt.KindBase, scheduler.FullDeclaration, rawArgument},
	{stmt.KindTypedef, scheduler.FullDeclaration, identifierArgument},
	{stmt.KindType, scheduler.FullDeclaration, rawArgument},
	{stmt.KindUnits, scheduler.FullDeclaration, rawArgument},
	{stmt.KindDefault, scheduler.FullDeclaration, rawArgument},
	{stmt.KindContainer, scheduler.FullDeclaration, schemaNodeSupport{}},
	{stmt.KindPresence, scheduler.FullDeclaration, rawArgument},
	{stmt.KindLeaf, scheduler.FullDeclaration, schemaNodeSupport{}},
	{stmt.KindLeafList, scheduler.FullDeclaration, schemaNodeSupport{}},
	{stmt.KindList, scheduler.FullDeclaration, schemaNodeSupport{}},
	{stmt.KindKey, scheduler.FullDeclaration, rawArgument},
	{stmt.KindUnique, scheduler.FullDeclaration, rawArgument},
	{stmt.KindMinElements, scheduler.FullDeclaration, minElementsArg},
	{stmt.KindMaxElements, scheduler.FullDeclaration, maxElementsArg},
	{stmt.KindOrderedBy, scheduler.FullDeclaration, orderedByArgument},
	{stmt.KindChoice, scheduler.FullDeclaration, schemaNodeSupport{}},
	{stmt.KindCase, scheduler.FullDeclaration, schemaNodeSupport{}},
	{stmt.KindAnydata, scheduler.FullDeclaration, schemaNodeSupport{}},
	{stmt.KindAnyxml, scheduler.FullDeclaration, schemaNodeSupport{}},
	{stmt.KindGrouping, scheduler.FullDeclaration, groupingSupport{}},
	{stmt.KindUses, scheduler.FullDeclaration, usesSupport{}},
	{stmt.KindRefine, scheduler.FullDeclaration, refineSupport{}},
	{stmt.KindAugment, scheduler.FullDeclaration, augmentSupport{}},
	{stmt.KindWhen, scheduler.FullDeclaration, rawArgument},
	{stmt.KindMust, scheduler.FullDeclaration, rawArgument},
	{stmt.KindConfig, scheduler.FullDeclaration, booleanArgument},
	{stmt.KindMandatory, scheduler.FullDeclaration, booleanArgument},
	{stmt.KindRpc, scheduler.FullDeclaration, operationSupport{}},
	{stmt.KindAction, scheduler.FullDeclaration, operationSupport{}},
	{stmt.KindInput, scheduler.FullDeclaration, ioSupport{}},
	{stmt.KindOutput, scheduler.FullDeclaration, ioSupport{}},
	{stmt.KindNotification, scheduler.FullDeclaration, schemaNodeSupport{}},
	{stmt.KindEnum, scheduler.FullDeclaration, rawArgument},
	{stmt.KindBit, scheduler.FullDeclaration, identifierArgument},
	{stmt.KindValue, scheduler.FullDeclaration, integerArgument},
	{stmt.KindPosition, scheduler.FullDeclaration, unsignedArgument},
	{stmt.KindLength, scheduler.FullDeclaration, rawArgument},
	{stmt.KindPattern, scheduler.FullDeclaration, rawArgument},
	{stmt.KindRange, scheduler.FullDeclaration, rawArgument},
	{stmt.KindPath, scheduler.FullDeclaration, rawArgument},
	{stmt.KindRequireInstance, scheduler.FullDeclaration, booleanArgument},
	{stmt.KindFractionDigits, scheduler.FullDeclaration, fractionDigitsArg},
	{stmt.KindErrorMessage, scheduler.FullDeclaration, rawArgument},
	{stmt.KindErrorAppTag, scheduler.FullDeclaration, rawArgument},
	{stmt.KindModifier, scheduler.FullDeclaration, modifierArgument},
}

// Register adds every core statement to r.
func (Bundle) Register(r *registry.Registry) {
	for _, reg := range registrations {
		r.RegisterStatement(&stmt.Definition{
			Kind:    reg.kind,
			Keyword: reg.kind.Keyword(),
			Support: reg.support,
		}, reg.since)
	}
}
