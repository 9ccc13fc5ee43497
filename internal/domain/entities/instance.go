package entities

// Instance is a single stored entity instance. Field values are held in
// canonical string form; BOOLEAN fields store "true" or "false". The ID is
// assigned by the store and never appears in Fields.
type Instance struct {
	Type   string            `json:"type"`
	ID     string            `json:"id"`
	Fields map[string]string `json:"fields"`
}

// Clone returns a deep copy so callers can mutate the result freely.
func (i *Instance) Clone() *Instance {
	fields := make(map[string]string, len(i.Fields))
	for k, v := range i.Fields {
		fields[k] = v
	}
	return &Instance{Type: i.Type, ID: i.ID, Fields: fields}
}
