package storage

// planSchema validates JSON plan files before unmarshalling. YAML files
// skip schema validation and rely on the decoder's type checking.
const planSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "tasks"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string"},
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "description": {"type": "string"},
          "status": {"enum": ["", "pending", "in_progress", "blocked", "done"]},
          "priority": {"enum": ["", "low", "medium", "high"]},
          "estimate": {"type": "string"},
          "estimate_minutes": {"type": "integer", "minimum": 0},
          "acceptance": {"type": "string"},
          "depends_on": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`
