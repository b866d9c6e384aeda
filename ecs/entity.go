package ecs

import "strconv"

// Entity packs a generation in the high 32 bits and an id in the low 32 bits,
// so a stale handle to a recycled id never matches the new entity.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	s := strconv.FormatUint(uint64(e.id()), 10)
	if g := e.generation(); g > 0 {
		s += "v" + strconv.FormatUint(uint64(g), 10)
	}
	return s
}

func (e Entity) Valid() bool {
	return e.id() > 0
}
