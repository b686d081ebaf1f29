// builtins.go: catalog of the built-in functions available to every
// Aether program, used for hover and completion.
package aether

import (
	"fmt"
	"strings"
)

// BuiltinFunction documents one built-in.
type BuiltinFunction struct {
	Name        string
	Signature   string
	Description string
	Category    string
	Examples    []string
}

// Detail renders the short completion detail line.
func (b *BuiltinFunction) Detail() string {
	return fmt.Sprintf("%s - %s", b.Signature, b.Category)
}

// MarkdownDoc renders the full hover/completion documentation.
func (b *BuiltinFunction) MarkdownDoc() string {
	return fmt.Sprintf("%s\n\n**Category**: %s\n\n**Examples**:\n```aether\n%s\n```",
		b.Description, b.Category, strings.Join(b.Examples, "\n"))
}

// FindBuiltin looks a built-in up by exact name.
func FindBuiltin(name string) *BuiltinFunction {
	for i := range builtins {
		if builtins[i].Name == name {
			return &builtins[i]
		}
	}
	return nil
}

// Builtins returns the whole catalog in declaration order.
func Builtins() []BuiltinFunction {
	return builtins
}

var builtins = []BuiltinFunction{
	// IO
	{
		Name:        "PRINTLN",
		Signature:   "PRINTLN(value...)",
		Description: "Prints values to the console followed by a newline",
		Category:    "IO",
		Examples:    []string{`PRINTLN("Hello World")`, `PRINTLN(MY_VAR, MY_VAR2)`},
	},
	{
		Name:        "PRINT",
		Signature:   "PRINT(value...)",
		Description: "Prints values to the console without a trailing newline",
		Category:    "IO",
		Examples:    []string{`PRINT("Result: ")`, `PRINT(RESULT)`},
	},
	{
		Name:        "INPUT",
		Signature:   "INPUT(prompt)",
		Description: "Reads a line of user input",
		Category:    "IO",
		Examples:    []string{`Set NAME INPUT("Enter your name: ")`},
	},

	// Array
	{
		Name:        "MAP",
		Signature:   "MAP(array, function)",
		Description: "Applies a function to every element of an array",
		Category:    "Array",
		Examples:    []string{`Set DOUBLED MAP(NUMBERS, Lambda X -> (X * 2))`},
	},
	{
		Name:        "FILTER",
		Signature:   "FILTER(array, predicate)",
		Description: "Keeps the array elements the predicate accepts",
		Category:    "Array",
		Examples:    []string{`Set EVENS FILTER(NUMBERS, Lambda X -> ((X % 2) == 0))`},
	},
	{
		Name:        "REDUCE",
		Signature:   "REDUCE(array, function, initial)",
		Description: "Folds an array into a single value",
		Category:    "Array",
		Examples:    []string{`Set SUM REDUCE(NUMBERS, Lambda (ACC, X) -> (ACC + X), 0)`},
	},
	{
		Name:        "LENGTH",
		Signature:   "LENGTH(array_or_string)",
		Description: "Returns the length of an array or string",
		Category:    "Array",
		Examples:    []string{`Set LEN LENGTH([1, 2, 3])`, `Set STR_LEN LENGTH("hello")`},
	},
	{
		Name:        "PUSH",
		Signature:   "PUSH(array, element)",
		Description: "Appends an element to the end of an array",
		Category:    "Array",
		Examples:    []string{`PUSH(MY_ARR, 42)`},
	},
	{
		Name:        "POP",
		Signature:   "POP(array)",
		Description: "Removes and returns the last element of an array",
		Category:    "Array",
		Examples:    []string{`Set LAST POP(MY_ARR)`},
	},
	{
		Name:        "SORT",
		Signature:   "SORT(array)",
		Description: "Sorts an array in ascending order",
		Category:    "Array",
		Examples:    []string{`Set SORTED SORT([3, 1, 4, 1, 5])`},
	},
	{
		Name:        "REVERSE",
		Signature:   "REVERSE(array)",
		Description: "Reverses an array",
		Category:    "Array",
		Examples:    []string{`Set REVERSED REVERSE([1, 2, 3])`},
	},
	{
		Name:        "JOIN",
		Signature:   "JOIN(array, separator)",
		Description: "Joins array elements into a string with a separator",
		Category:    "Array",
		Examples:    []string{`Set CSV JOIN(["a", "b", "c"], ",")`},
	},
	{
		Name:        "RANGE",
		Signature:   "RANGE(start, end)",
		Description: "Produces an array of numbers over a range",
		Category:    "Array",
		Examples:    []string{`Set NUMS RANGE(1, 10)`},
	},
	{
		Name:        "SUM",
		Signature:   "SUM(array)",
		Description: "Sums the elements of an array",
		Category:    "Array",
		Examples:    []string{`Set TOTAL SUM([1, 2, 3, 4, 5])`},
	},
	{
		Name:        "MIN",
		Signature:   "MIN(array)",
		Description: "Returns the smallest element of an array",
		Category:    "Array",
		Examples:    []string{`Set MINIMUM MIN([3, 1, 4, 1, 5])`},
	},
	{
		Name:        "MAX",
		Signature:   "MAX(array)",
		Description: "Returns the largest element of an array",
		Category:    "Array",
		Examples:    []string{`Set MAXIMUM MAX([3, 1, 4, 1, 5])`},
	},

	// String
	{
		Name:        "SPLIT",
		Signature:   "SPLIT(string, separator)",
		Description: "Splits a string into an array",
		Category:    "String",
		Examples:    []string{`Set PARTS SPLIT("a,b,c", ",")`},
	},
	{
		Name:        "UPPER",
		Signature:   "UPPER(string)",
		Description: "Converts a string to uppercase",
		Category:    "String",
		Examples:    []string{`Set UPPER UPPER("hello")`},
	},
	{
		Name:        "LOWER",
		Signature:   "LOWER(string)",
		Description: "Converts a string to lowercase",
		Category:    "String",
		Examples:    []string{`Set LOWER LOWER("HELLO")`},
	},
	{
		Name:        "TRIM",
		Signature:   "TRIM(string)",
		Description: "Strips leading and trailing whitespace",
		Category:    "String",
		Examples:    []string{`Set TRIMMED TRIM("  hello  ")`},
	},
	{
		Name:        "REPLACE",
		Signature:   "REPLACE(string, old, new)",
		Description: "Replaces occurrences of a substring",
		Category:    "String",
		Examples:    []string{`Set REPLACED REPLACE("hello", "l", "r")`},
	},
	{
		Name:        "STARTSWITH",
		Signature:   "STARTSWITH(string, prefix)",
		Description: "Reports whether a string starts with a prefix",
		Category:    "String",
		Examples:    []string{`Set IS_PREFIX STARTSWITH("hello", "he")`},
	},
	{
		Name:        "ENDSWITH",
		Signature:   "ENDSWITH(string, suffix)",
		Description: "Reports whether a string ends with a suffix",
		Category:    "String",
		Examples:    []string{`Set IS_SUFFIX ENDSWITH("hello", "lo")`},
	},
	{
		Name:        "SUBSTRING",
		Signature:   "SUBSTRING(string, start, length)",
		Description: "Extracts a substring",
		Category:    "String",
		Examples:    []string{`Set SUB SUBSTRING("hello", 1, 3)`},
	},
	{
		Name:        "FORMAT",
		Signature:   "FORMAT(template, args...)",
		Description: "Formats a string from a template",
		Category:    "String",
		Examples:    []string{`Set MSG FORMAT("Hello {}, you are {} years old", NAME, AGE)`},
	},

	// Math
	{
		Name:        "ABS",
		Signature:   "ABS(number)",
		Description: "Returns the absolute value",
		Category:    "Math",
		Examples:    []string{`Set ABSOLUTE ABS(-5)`},
	},
	{
		Name:        "FLOOR",
		Signature:   "FLOOR(number)",
		Description: "Rounds down to the nearest integer",
		Category:    "Math",
		Examples:    []string{`Set FLOORED FLOOR(3.7)`},
	},
	{
		Name:        "CEIL",
		Signature:   "CEIL(number)",
		Description: "Rounds up to the nearest integer",
		Category:    "Math",
		Examples:    []string{`Set CEILED CEIL(3.2)`},
	},
	{
		Name:        "ROUND",
		Signature:   "ROUND(number)",
		Description: "Rounds to the nearest integer",
		Category:    "Math",
		Examples:    []string{`Set ROUNDED ROUND(3.5)`},
	},
	{
		Name:        "SQRT",
		Signature:   "SQRT(number)",
		Description: "Computes the square root",
		Category:    "Math",
		Examples:    []string{`Set ROOT SQRT(16)`},
	},
	{
		Name:        "POW",
		Signature:   "POW(base, exponent)",
		Description: "Raises a base to a power",
		Category:    "Math",
		Examples:    []string{`Set POWER POW(2, 3)`},
	},
	{
		Name:        "LOG",
		Signature:   "LOG(number)",
		Description: "Computes the natural logarithm",
		Category:    "Math",
		Examples:    []string{`Set LN LOG(2.718)`},
	},
	{
		Name:        "LOG10",
		Signature:   "LOG10(number)",
		Description: "Computes the base-10 logarithm",
		Category:    "Math",
		Examples:    []string{`Set LG LOG10(100)`},
	},
	{
		Name:        "SIN",
		Signature:   "SIN(radians)",
		Description: "Computes the sine",
		Category:    "Math",
		Examples:    []string{`Set SINE SIN(1.57)`},
	},
	{
		Name:        "COS",
		Signature:   "COS(radians)",
		Description: "Computes the cosine",
		Category:    "Math",
		Examples:    []string{`Set COSINE COS(0)`},
	},
	{
		Name:        "TAN",
		Signature:   "TAN(radians)",
		Description: "Computes the tangent",
		Category:    "Math",
		Examples:    []string{`Set TANGENT TAN(0.785)`},
	},
	{
		Name:        "RANDOM",
		Signature:   "RANDOM()",
		Description: "Returns a random number between 0 and 1",
		Category:    "Math",
		Examples:    []string{`Set RAND RANDOM()`},
	},

	// Type
	{
		Name:        "TYPE",
		Signature:   "TYPE(value)",
		Description: "Returns the type of a value as a string",
		Category:    "Type",
		Examples:    []string{`Set T TYPE(42)`},
	},
	{
		Name:        "STRING",
		Signature:   "STRING(value)",
		Description: "Converts a value to a string",
		Category:    "Type",
		Examples:    []string{`Set STR STRING(42)`},
	},
	{
		Name:        "NUMBER",
		Signature:   "NUMBER(string_or_value)",
		Description: "Converts a value to a number",
		Category:    "Type",
		Examples:    []string{`Set NUM NUMBER("42")`},
	},
	{
		Name:        "ISNUMBER",
		Signature:   "ISNUMBER(value)",
		Description: "Reports whether a value is a number",
		Category:    "Type",
		Examples:    []string{`Set IS_NUM ISNUMBER(42)`},
	},
	{
		Name:        "ISSTRING",
		Signature:   "ISSTRING(value)",
		Description: "Reports whether a value is a string",
		Category:    "Type",
		Examples:    []string{`Set IS_STR ISSTRING("hello")`},
	},
	{
		Name:        "ISARRAY",
		Signature:   "ISARRAY(value)",
		Description: "Reports whether a value is an array",
		Category:    "Type",
		Examples:    []string{`Set IS_ARR ISARRAY([1, 2])`},
	},
	{
		Name:        "ISDICT",
		Signature:   "ISDICT(value)",
		Description: "Reports whether a value is a dictionary",
		Category:    "Type",
		Examples:    []string{`Set IS_DICT ISDICT({"key": "value"})`},
	},

	// Dict
	{
		Name:        "KEYS",
		Signature:   "KEYS(dict)",
		Description: "Returns all keys of a dictionary",
		Category:    "Dict",
		Examples:    []string{`Set ALL_KEYS KEYS(MY_DICT)`},
	},
	{
		Name:        "VALUES",
		Signature:   "VALUES(dict)",
		Description: "Returns all values of a dictionary",
		Category:    "Dict",
		Examples:    []string{`Set ALL_VALUES VALUES(MY_DICT)`},
	},
	{
		Name:        "ITEMS",
		Signature:   "ITEMS(dict)",
		Description: "Returns an array of key/value pairs",
		Category:    "Dict",
		Examples:    []string{`Set PAIRS ITEMS(MY_DICT)`},
	},
	{
		Name:        "HASKEY",
		Signature:   "HASKEY(dict, key)",
		Description: "Reports whether a dictionary contains a key",
		Category:    "Dict",
		Examples:    []string{`Set HAS HASKEY(MY_DICT, "name")`},
	},

	// JSON
	{
		Name:        "JSONPARSE",
		Signature:   "JSONPARSE(json_string)",
		Description: "Parses a JSON string into a value",
		Category:    "JSON",
		Examples:    []string{`Set DATA JSONPARSE("{\"name\": \"Alice\"}")`},
	},
	{
		Name:        "JSONSTRINGIFY",
		Signature:   "JSONSTRINGIFY(value)",
		Description: "Serializes a value to a JSON string",
		Category:    "JSON",
		Examples:    []string{`Set JSON JSONSTRINGIFY(MY_DATA)`},
	},

	// DateTime
	{
		Name:        "NOW",
		Signature:   "NOW()",
		Description: "Returns the current timestamp",
		Category:    "DateTime",
		Examples:    []string{`Set TIMESTAMP NOW()`},
	},
	{
		Name:        "FORMATDATE",
		Signature:   "FORMATDATE(timestamp, format)",
		Description: "Formats a timestamp",
		Category:    "DateTime",
		Examples:    []string{`Set DATE_STR FORMATDATE(NOW(), "%Y-%m-%d")`},
	},
	{
		Name:        "SLEEP",
		Signature:   "SLEEP(seconds)",
		Description: "Pauses execution for the given number of seconds",
		Category:    "DateTime",
		Examples:    []string{`SLEEP(1)`},
	},
}
