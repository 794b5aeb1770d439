package stmt

// Kind is the closed set of statement kinds the resolver knows about, plus
// KindUnknown for extension instances nobody registered a support for.
type Kind int

const (
	KindUnknown Kind = iota
	KindExtensionInstance

	KindModule
	KindSubmodule
	KindYangVersion
	KindNamespace
	KindPrefix
	KindImport
	KindInclude
	KindRevision
	KindRevisionDate
	KindBelongsTo
	KindOrganization
	KindContact
	KindDescription
	KindReference
	KindStatus
	KindExtension
	KindArgument
	KindYinElement
	KindFeature
	KindIfFeature
	KindIdentity
	KindBase
	KindTypedef
	KindType
	KindUnits
	KindDefault
	KindContainer
	KindPresence
	KindLeaf
	KindLeafList
	KindList
	KindKey
	KindUnique
	KindMinElements
	KindMaxElements
	KindOrderedBy
	KindChoice
	KindCase
	KindAnydata
	KindAnyxml
	KindGrouping
	KindUses
	KindRefine
	KindAugment
	KindWhen
	KindMust
	KindConfig
	KindMandatory
	KindRpc
	KindAction
	KindInput
	KindOutput
	KindNotification
	KindEnum
	KindBit
	KindValue
	KindPosition
	KindLength
	KindPattern
	KindRange
	KindPath
	KindRequireInstance
	KindFractionDigits
	KindErrorMessage
	KindErrorAppTag
	KindModifier
)

var kindKeywords = map[Kind]string{
	KindModule:          "module",
	KindSubmodule:       "submodule",
	KindYangVersion:     "yang-version",
	KindNamespace:       "namespace",
	KindPrefix:          "prefix",
	KindImport:          "import",
	KindInclude:         "include",
	KindRevision:        "revision",
	KindRevisionDate:    "revision-date",
	KindBelongsTo:       "belongs-to",
	KindOrganization:    "organization",
	KindContact:         "contact",
	KindDescription:     "description",
	KindReference:       "reference",
	KindStatus:          "status",
	KindExtension:       "extension",
	KindArgument:        "argument",
	KindYinElement:      "yin-element",
	KindFeature:         "feature",
	KindIfFeature:       "if-feature",
	KindIdentity:        "identity",
	KindBase:            "base",
	KindTypedef:         "typedef",
	KindType:            "type",
	KindUnits:           "units",
	KindDefault:         "default",
	KindContainer:       "container",
	KindPresence:        "presence",
	KindLeaf:            "leaf",
	KindLeafList:        "leaf-list",
	KindList:            "list",
	KindKey:             "key",
	KindUnique:          "unique",
	KindMinElements:     "min-elements",
	KindMaxElements:     "max-elements",
	KindOrderedBy:       "ordered-by",
	KindChoice:          "choice",
	KindCase:            "case",
	KindAnydata:         "anydata",
	KindAnyxml:          "anyxml",
	KindGrouping:        "grouping",
	KindUses:            "uses",
	KindRefine:          "refine",
	KindAugment:         "augment",
	KindWhen:            "when",
	KindMust:            "must",
	KindConfig:          "config",
	KindMandatory:       "mandatory",
	KindRpc:             "rpc",
	KindAction:          "action",
	KindInput:           "input",
	KindOutput:          "output",
	KindNotification:    "notification",
	KindEnum:            "enum",
	KindBit:             "bit",
	KindValue:           "value",
	KindPosition:        "position",
	KindLength:          "length",
	KindPattern:         "pattern",
	KindRange:           "range",
	KindPath:            "path",
	KindRequireInstance: "require-instance",
	KindFractionDigits:  "fraction-digits",
	KindErrorMessage:    "error-message",
	KindErrorAppTag:     "error-app-tag",
	KindModifier:        "modifier",
}

var keywordKinds = func() map[string]Kind {
	m := make(map[string]Kind, len(kindKeywords))
	for k, kw := range kindKeywords {
		m[kw] = k
	}
	return m
}()

// KindOf returns the kind of a core keyword.
func KindOf(keyword string) (Kind, bool) {
	k, ok := keywordKinds[keyword]
	return k, ok
}

// Keyword returns the core keyword of k, or "" for extension kinds.
func (k Kind) Keyword() string {
	return kindKeywords[k]
}

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown-extension"
	case KindExtensionInstance:
		return "extension-instance"
	}
	return kindKeywords[k]
}

// IsSchemaTree reports whether statements of this kind are schema nodes,
// addressable by a schema node identifier.
func (k Kind) IsSchemaTree() bool {
	switch k {
	case KindContainer, KindLeaf, KindLeafList, KindList, KindChoice, KindCase,
		KindAnydata, KindAnyxml, KindRpc, KindAction, KindInput, KindOutput, KindNotification:
		return true
	}
	return false
}

// IsDataDefinition reports whether k is a data definition statement.
func (k Kind) IsDataDefinition() bool {
	switch k {
	case KindContainer, KindLeaf, KindLeafList, KindList, KindChoice, KindAnydata, KindAnyxml, KindUses:
		return true
	}
	return false
}

// IsShorthandCase reports whether a statement of this kind placed directly
// under a choice is wrapped in an implicit case.
func (k Kind) IsShorthandCase() bool {
	switch k {
	case KindContainer, KindLeaf, KindLeafList, KindList, KindChoice, KindAnydata, KindAnyxml:
		return true
	}
	return false
}
