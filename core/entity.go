package core

// Entity is a unique identifier for an entity
// Zero is never a valid entity; systems use it as "no entity"
type Entity uint64

// NoEntity is the zero entity sentinel
const NoEntity Entity = 0
