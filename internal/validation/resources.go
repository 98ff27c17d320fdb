package validation

const maxStringLength = 255

var GameRules = RuleSet{
	Field("name", Required, String, Max(maxStringLength)),
	Field("studio", Required, String, Max(maxStringLength)),
	Field("genre", Required, String, Max(maxStringLength)),
	Field("review", Required, In("positive", "negative")),
}

var MayorRules = RuleSet{
	Field("name", Required, String, Max(maxStringLength)),
	Field("age", Required, Integer, Min(0)),
	Field("address", Required, String, Max(maxStringLength)),
	Field("city", Required, String, Max(maxStringLength)),
}

var ChirpRules = RuleSet{
	Field("message", Required, String, Max(maxStringLength)),
}
