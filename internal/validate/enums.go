package validate

// Allowed values for the enumerated descriptor fields. All
// comparisons are case-sensitive.
var (
	allowedLayers    = []string{"xAPI", "sAPI", "pAPI"}
	allowedAudiences = []string{"Internal", "External"}
	allowedStatuses  = []string{"develop", "test", "prelive", "live", "deprecated", "demised"}
	allowedAPIStyles = []string{
		"HYDROGEN", "DOMAIN_PAPI", "ORIGINATIONS", "BANKING 2.0",
		"FIRST_DIRECT", "BERLIN", "STET", "OBIE", "OTHER",
	}
	allowedArchStyles          = []string{"REST", "GRAPHQL", "SOAP", "RPC"}
	allowedDataClassifications = []string{"public", "internal", "confidential", "restricted", "secret"}
	allowedFrameworks          = []string{
		"CARBON", "SPRING_BOOT", "SILVER", "SILVER_1S", "NODE JS", "DOMAIN_PAPI", "MULESOFT", "OTHER",
	}
	allowedGBGFs = []string{
		"CMB", "Central-Architecture", "Corporate-Functions", "Group-Data", "FCR", "GBM", "GPB",
		"Cyber-Security", "ITID", "OSS", "Payments", "RBWM", "HBFR", "Risk", "DAO", "WSIT",
		"WPB", "Compliance", "CTO", "Enterprise Technology", "GOA",
	}
)

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
