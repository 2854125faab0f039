package zmtp

// Security names the ZMTP security mechanism a handshake negotiates.
// Only NULL is implemented; spec.md §1 explicitly excludes CURVE and
// PLAIN from the core.
type Security string

// MechanismNULL performs no authentication or encryption: it is the
// only security mechanism this client supports.
const MechanismNULL Security = "NULL"
