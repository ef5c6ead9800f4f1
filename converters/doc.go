// Package converters provides the built-in converters for values that are not
// plain data: errors, dates and regular expressions.
//
//	Tag       Go value             Payload
//	Error     any error            {name, message, stack?, cause? | causes?}
//	Date      time.Time            Unix milliseconds
//	RegExp    *pattern.Pattern     {source, flags, lastIndex}
//	GoRegexp  *regexp.Regexp       {source}
//
// Register adds all of them to a registry. Errors decode to *Error, which
// keeps the name, message, stack text and cause of the original.
package converters
