package utility

import (
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/schema"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

const Category = "utility"

const (
	SkillCalculate       = "calculate"
	SkillRandomNumber    = "generate_random_number"
	SkillCurrentDatetime = "get_current_datetime"
	SkillManipulateText  = "manipulate_text"
	SkillParseURL        = "parse_url"
)

func definition(name, displayName, description string, parameters *types.ParameterSchema) types.SkillDefinition {
	return types.SkillDefinition{
		Name:        name,
		DisplayName: displayName,
		Description: description,
		Category:    Category,
		Parameters:  parameters,
	}
}

func Definitions() []types.SkillDefinition {
	return []types.SkillDefinition{
		definition(SkillCalculate, "Calculator",
			"Perform a mathematical calculation",
			schema.Object(map[string]*types.ParameterSchema{
				"expression": schema.String(`Mathematical expression to evaluate (e.g., "2 + 3 * 4", "Math.sqrt(16)")`).WithExample("2 + 3 * 4"),
				"precision":  schema.Integer("Number of decimal places in the result").WithRange(0, 10).WithDefault(2),
			}, "expression"),
		),
		definition(SkillRandomNumber, "Random Number Generator",
			"Generate a random number within the specified range",
			schema.Object(map[string]*types.ParameterSchema{
				"min":   schema.Number("Minimum value (inclusive)").WithExample(1),
				"max":   schema.Number("Maximum value (inclusive)").WithExample(100),
				"count": schema.Integer("Number of random numbers to generate").WithRange(1, 10).WithExample(1),
			}, "min", "max"),
		),
		definition(SkillCurrentDatetime, "Current Date & Time",
			"Get the current date and time",
			schema.Object(map[string]*types.ParameterSchema{
				"timezone": schema.String(`Timezone (e.g., "America/New_York", "UTC")`).WithExample("UTC"),
				"format":   schema.String("Output format").WithEnum("iso", "human", "date_only", "time_only").WithExample("iso"),
			}),
		),
		definition(SkillManipulateText, "Text Utilities",
			"Perform text manipulation operations",
			schema.Object(map[string]*types.ParameterSchema{
				"text": schema.String("The text to manipulate").WithExample("Hello World"),
				"operation": schema.String("Text manipulation operation to perform").
					WithEnum("uppercase", "lowercase", "title_case", "reverse", "word_count", "char_count").
					WithExample("uppercase"),
			}, "text", "operation"),
		),
		definition(SkillParseURL, "URL Utilities",
			"Parse a URL and extract its components",
			schema.Object(map[string]*types.ParameterSchema{
				"url": schema.String("The URL to parse").WithFormat(schema.FormatURI).WithExample("https://example.com/path?param=value#section"),
			}, "url"),
		),
	}
}
