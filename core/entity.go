package core

// Entity is a dense integer handle for a simulated object.
// Zero is never a valid entity; systems use it as a "no entity" sentinel.
type Entity uint32

// None is the invalid entity handle.
const None Entity = 0
