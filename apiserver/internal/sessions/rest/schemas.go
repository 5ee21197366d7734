package rest

import "github.com/xeipuuv/gojsonschema"

var searchSchemaLoader = gojsonschema.NewStringLoader(`{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Search",
  "type": "object",
  "required": ["query"],
  "additionalProperties": false,
  "properties": {
    "query": { "type": "string" }
  }
}`)

var pageSchemaLoader = gojsonschema.NewStringLoader(`{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Page",
  "type": "object",
  "required": ["page"],
  "additionalProperties": false,
  "properties": {
    "page": { "type": "integer" }
  }
}`)

var fieldEditSchemaLoader = gojsonschema.NewStringLoader(`{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "FieldEdit",
  "type": "object",
  "required": ["field", "value"],
  "additionalProperties": false,
  "properties": {
    "field": { "type": "string", "enum": ["name", "email"] },
    "value": { "type": "string" }
  }
}`)
