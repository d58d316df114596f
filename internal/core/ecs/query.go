package ecs

// Each1 calls fn for every entity in entities that holds an A. Entities that
// lost the component since admission are skipped.
func Each1[A any](r *Registry, entities []Entity, fn func(Entity, *A)) {
	for _, e := range entities {
		a, err := GetComponent[A](r, e)
		if err != nil {
			continue
		}
		fn(e, a)
	}
}

// Each2 calls fn for every entity in entities that holds both A and B.
func Each2[A, B any](r *Registry, entities []Entity, fn func(Entity, *A, *B)) {
	for _, e := range entities {
		a, err := GetComponent[A](r, e)
		if err != nil {
			continue
		}
		b, err := GetComponent[B](r, e)
		if err != nil {
			continue
		}
		fn(e, a, b)
	}
}

// Each3 calls fn for every entity in entities that holds A, B and C.
func Each3[A, B, C any](r *Registry, entities []Entity, fn func(Entity, *A, *B, *C)) {
	for _, e := range entities {
		a, err := GetComponent[A](r, e)
		if err != nil {
			continue
		}
		b, err := GetComponent[B](r, e)
		if err != nil {
			continue
		}
		c, err := GetComponent[C](r, e)
		if err != nil {
			continue
		}
		fn(e, a, b, c)
	}
}
