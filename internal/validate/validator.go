package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/blang/semver/v4"

	"github.com/apigenie/apigenie/internal/meta"
)

var (
	minMetaDataVersion = semver.MustParse("6.0.0")
	assetNameRe        = regexp.MustCompile(`^[a-z]+((--|-)[a-z0-9]+)*$`)
	assetVersionRe     = regexp.MustCompile(`^1\.0\.0.*$`)
	contractVersionRe  = regexp.MustCompile(`^[vV]?[0-9]+(?:\.[0-9]+){1,2}$`)
)

// rule is one compliance check. Rules never short-circuit: a
// descriptor is always held against the full list so the user sees
// every problem at once.
type rule func(data meta.Descriptor, loc string, res *Result)

// rules is the fixed, ordered compliance rule list. The straightforward
// presence, enum and pattern checks are built from the table helpers
// below; the version comparison and the layer-conditional checks are
// hand-written.
var rules = []rule{
	checkMetaDataVersion,
	patternRule("assetName", assetNameRe, "does not match required pattern", "assetName"),
	patternRule("assetVersion", assetVersionRe, "should start with '1.0.0'", "assetVersion"),
	checkAutoIncrementAssetVersion,
	presenceRule("contractFileName", "contractFileName is missing", "contractFileName"),
	checkIgnore,
	enumRule("API.layer", allowedLayers, "API.layer"),
	enumRule("API.audience", allowedAudiences, "API.audience"),
	patternRule("API.version.contractVersion", contractVersionRe, "does not match version pattern", "API.version.contractVersion"),
	enumRule("API.version.status", allowedStatuses, "API.version.status"),
	presenceRule("API.version.privateAPI", "API.version.privateAPI is missing", "API.version.privateAPI"),
	enumRule("API.version.apiStyle", allowedAPIStyles, "API.version.apiStyle"),
	checkImplementationFramework,
	enumRule("API.version.architecturalStyle", allowedArchStyles, "API.version.architecturalStyle"),
	checkBusinessModels,
	checkBusinessModelsWPBCIDM,
	enumRule("API.version.dataClassification", allowedDataClassifications, "API.version.dataClassification"),
	checkGBGF,
	presenceRule("serviceLine",
		"serviceLine is missing (should be in API.contractOwner.serviceLine or contractOwner.serviceLine)",
		"API.contractOwner.serviceLine", "contractOwner.serviceLine"),
	presenceRule("teamName",
		"teamName is missing (should be in API.contractOwner.teamName or contractOwner.teamName)",
		"API.contractOwner.teamName", "contractOwner.teamName"),
	presenceRule("teamEmailAddress",
		"teamEmailAddress is missing (should be in API.contractOwner.teamEmailAddress or contractOwner.teamEmailAddress)",
		"API.contractOwner.teamEmailAddress", "contractOwner.teamEmailAddress"),
	checkTransactionNames,
}

// RuleCount is the number of compliance rules a descriptor is held to.
func RuleCount() int { return len(rules) }

// Descriptor runs every rule against one parsed descriptor. A rule
// that panics becomes a validation error instead of taking the other
// rules down with it.
func Descriptor(data meta.Descriptor, loc string) *Result {
	res := &Result{}
	if data == nil {
		res.AddError("meta file content is not a valid mapping", loc)
		return res
	}
	for _, r := range rules {
		runRule(r, data, loc, res)
	}
	return res
}

func runRule(r rule, data meta.Descriptor, loc string, res *Result) {
	defer func() {
		if p := recover(); p != nil {
			res.AddError(fmt.Sprintf("validation rule error: %v", p), loc)
		}
	}()
	r(data, loc, res)
}

// presenceRule errors with msg when none of paths holds a non-empty value.
func presenceRule(field, msg string, paths ...string) rule {
	return func(data meta.Descriptor, loc string, res *Result) {
		v, _ := meta.First(data, paths...)
		if v == nil {
			res.AddError(msg, loc)
		}
	}
}

// enumRule errors when the field is missing or outside the allowed set.
func enumRule(field string, allowed []string, paths ...string) rule {
	return func(data meta.Descriptor, loc string, res *Result) {
		v, _ := meta.First(data, paths...)
		if v == nil {
			res.AddError(field+" is missing", loc)
			return
		}
		if s, ok := v.(string); !ok || !contains(allowed, s) {
			res.AddError(fmt.Sprintf("%s '%v' is not in allowed values %v", field, v, allowed), loc)
		}
	}
}

// patternRule errors when the field is missing or does not match re.
func patternRule(field string, re *regexp.Regexp, mismatch string, paths ...string) rule {
	return func(data meta.Descriptor, loc string, res *Result) {
		v, _ := meta.First(data, paths...)
		if v == nil {
			res.AddError(field+" is missing", loc)
			return
		}
		if !re.MatchString(fmt.Sprintf("%v", v)) {
			res.AddError(fmt.Sprintf("%s '%v' %s", field, v, mismatch), loc)
		}
	}
}

// checkMetaDataVersion requires metaDataVersion >= 6.0.0, comparing the
// first three dotted components.
func checkMetaDataVersion(data meta.Descriptor, loc string, res *Result) {
	v := meta.Nested(data, "metaDataVersion")
	if v == nil {
		res.AddError("metaDataVersion is missing", loc)
		return
	}
	s := fmt.Sprintf("%v", v)
	parts := strings.Split(s, ".")
	if len(parts) < 3 {
		res.AddError(fmt.Sprintf("metaDataVersion format invalid: %v", v), loc)
		return
	}
	var nums [3]uint64
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseUint(parts[i], 10, 64)
		if err != nil {
			res.AddError(fmt.Sprintf("metaDataVersion is not a valid version number: %v", v), loc)
			return
		}
		nums[i] = n
	}
	ver := semver.Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}
	if ver.LT(minMetaDataVersion) {
		res.AddError(fmt.Sprintf("metaDataVersion %v is less than required 6.0.0", v), loc)
	}
}

func checkAutoIncrementAssetVersion(data meta.Descriptor, loc string, res *Result) {
	v := meta.Nested(data, "autoIncrementAssetVersion")
	if v == nil {
		res.AddError("autoIncrementAssetVersion is missing", loc)
		return
	}
	if b, ok := v.(bool); !ok || !b {
		res.AddError(fmt.Sprintf("autoIncrementAssetVersion should be true, got %v", v), loc)
	}
}

func checkIgnore(data meta.Descriptor, loc string, res *Result) {
	v := meta.Nested(data, "ignore")
	if v == nil {
		res.AddError("ignore field is missing", loc)
		return
	}
	if b, ok := v.(bool); ok && b {
		res.AddError("ignore should be false", loc)
	}
}

func checkImplementationFramework(data meta.Descriptor, loc string, res *Result) {
	v := meta.Nested(data, "API.version.implementationFramework")
	if v == nil || v == "" {
		res.AddError("wpb-implementationFramework-missing", loc)
		return
	}
	if s, ok := v.(string); !ok || !contains(allowedFrameworks, s) {
		res.AddError(fmt.Sprintf("wpb-implementationFramework-unrecognised: '%v' not in %v", v, allowedFrameworks), loc)
	}
}

// checkBusinessModels requires a non-empty businessModels list for
// process-layer APIs.
func checkBusinessModels(data meta.Descriptor, loc string, res *Result) {
	layer := meta.Nested(data, "API.layer")
	if layer != "pAPI" {
		return
	}
	v := meta.Nested(data, "API.version.businessModels")
	if v == nil {
		res.AddError("API.version.businessModels is required when API.layer is 'pAPI'", loc)
		return
	}
	if list, ok := v.([]any); ok && len(list) == 0 {
		res.AddError("API.version.businessModels is required when API.layer is 'pAPI'", loc)
	}
}

// checkBusinessModelsWPBCIDM enforces WPB-CIDM membership: a pAPI must
// name it, and when sAPI/xAPI descriptors carry business models at all,
// every entry must be WPB-CIDM.
func checkBusinessModelsWPBCIDM(data meta.Descriptor, loc string, res *Result) {
	layer := meta.Nested(data, "API.layer")
	v := meta.Nested(data, "API.version.businessModels")
	list, isList := v.([]any)
	switch layer {
	case "pAPI":
		if !isList || len(list) == 0 {
			res.AddError("API.version.businessModels is required and must be a list when API.layer is 'pAPI' (WPB-CIDM check)", loc)
			return
		}
		for _, bm := range list {
			if m, ok := bm.(map[string]any); ok && m["name"] == "WPB-CIDM" {
				return
			}
		}
		res.AddError("API.version.businessModels must contain an object with name 'WPB-CIDM' when API.layer is 'pAPI'", loc)
	case "sAPI", "xAPI":
		if !isList {
			return
		}
		for _, bm := range list {
			m, ok := bm.(map[string]any)
			if !ok || m["name"] != "WPB-CIDM" {
				res.AddError("If API.layer is 'sAPI' or 'xAPI', all businessModels names must be 'WPB-CIDM' if present", loc)
				return
			}
		}
	}
}

// checkGBGF accepts the GBGF value from any of its three historical
// locations, in precedence order.
func checkGBGF(data meta.Descriptor, loc string, res *Result) {
	fromContract := meta.Nested(data, "API.contract.GBGF")
	v, _ := meta.First(data, "API.contract.GBGF", "contractOwner.GBGF", "API.contractOwner.GBGF")
	if v == nil {
		res.AddError("GBGF field is missing (should be in API.contract.GBGF or contractOwner.GBGF)", loc)
		return
	}
	location := "contractOwner.GBGF"
	if fromContract != nil && fromContract != "" {
		location = "API.contract.GBGF"
	}
	if s, ok := v.(string); !ok || !contains(allowedGBGFs, s) {
		res.AddError(fmt.Sprintf("GBGF value '%v' in %s is not in allowed values %v", v, location, allowedGBGFs), loc)
	}
}

// checkTransactionNames requires transactionNames for service-layer APIs.
func checkTransactionNames(data meta.Descriptor, loc string, res *Result) {
	layer := meta.Nested(data, "API.layer")
	if layer != "sAPI" {
		return
	}
	v := meta.Nested(data, "API.version.transactionNames")
	if v == nil {
		res.AddError("API.version.transactionNames is required when API.layer is 'sAPI'", loc)
		return
	}
	if list, ok := v.([]any); ok && len(list) == 0 {
		res.AddError("API.version.transactionNames is required when API.layer is 'sAPI'", loc)
	}
}
