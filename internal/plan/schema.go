package plan

// fileSchema is the JSON Schema a plan file must satisfy before it is
// decoded. Keeping it strict (additionalProperties: false) turns typos
// in key names into load-time errors instead of silently ignored knobs.
const fileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "concurrency":  { "type": "integer", "minimum": 1 },
    "requests":     { "type": "integer", "minimum": 1 },
    "order":        { "type": "string", "enum": ["r", "s"] },
    "delayMs":      { "type": "integer", "minimum": 0 },
    "delayDist":    { "type": "string", "enum": ["c", "u", "ne"] },
    "urlFile":      { "type": "string" },
    "urls":         { "type": "array", "items": { "type": "string" }, "minItems": 1 },
    "prefix":       { "type": "string" },
    "method":       { "type": "string" },
    "payloadsFile": { "type": "string" },
    "reportSlow":   { "type": "number", "exclusiveMinimum": 0, "maximum": 1 }
  }
}`
