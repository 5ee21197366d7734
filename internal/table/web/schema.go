package web

// memberSchema describes a single member as served by a member source. Ids
// may arrive as integers or as strings of decimal digits.
const memberSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Member",
  "type": "object",
  "required": ["id", "name", "email", "role"],
  "properties": {
    "id": {
      "oneOf": [
        { "type": "integer", "minimum": 1 },
        { "type": "string", "pattern": "^[0-9]+$" }
      ]
    },
    "name": { "type": "string", "minLength": 1 },
    "email": { "type": "string", "minLength": 1 },
    "role": { "type": "string", "enum": ["member", "admin"] }
  }
}`
