package quill

import (
	"sync"

	"github.com/akmonengine/quill/intersection"
	"github.com/akmonengine/quill/mpr"
	"github.com/akmonengine/quill/shape"
)

// Candidate is a pair of shapes entering the narrow phase. It is carried over
// to the Contact so that callers can match results arriving out of order.
type Candidate struct {
	ID int
	A  shape.Shape
	B  shape.Shape
}

// Contact is an overlapping candidate with its manifold
type Contact struct {
	Candidate
	Type     intersection.Type
	Manifold intersection.Manifold
}

// stage is the narrow phase path a candidate is sent to
type stage int8

const (
	stageNone stage = iota
	stageAnalytic
	stageSAT
	stageMPR
)

// NarrowPhase streams the contacts of the overlapping candidates. Pairs with a
// closed form contact (planes, spheres, capsules) are solved directly, box
// pairs go through the separating axis test, which yields a full manifold,
// every other convex pair through MPR. Pairs that fit none of them are
// dropped. The output channel is closed once candidates is drained.
func NarrowPhase(candidates <-chan Candidate, workersCount int) <-chan Contact {
	workersCount = max(workersCount, 1)

	analyticPairs := make(chan Candidate, workersCount)
	boxPairs := make(chan Candidate, workersCount)
	convexPairs := make(chan Candidate, workersCount)

	go func() {
		defer close(analyticPairs)
		defer close(boxPairs)
		defer close(convexPairs)

		for candidate := range candidates {
			switch route(candidate.A, candidate.B) {
			case stageAnalytic:
				analyticPairs <- candidate
			case stageSAT:
				boxPairs <- candidate
			case stageMPR:
				convexPairs <- candidate
			}
		}
	}()

	contacts := make(chan Contact, workersCount*2)
	var wg sync.WaitGroup
	forward := func(stageContacts <-chan Contact) {
		defer wg.Done()
		for contact := range stageContacts {
			contacts <- contact
		}
	}

	wg.Add(3)
	go forward(Analytic(analyticPairs, workersCount))
	go forward(SAT(boxPairs, workersCount))
	go forward(MPR(convexPairs, workersCount))

	go func() {
		wg.Wait()
		close(contacts)
	}()

	return contacts
}

// Analytic solves the candidates that have a closed form contact. The plane
// is a solid half-space; when it is the second shape the manifold is flipped
// so that its normal still points from A toward B. Other candidates are dropped.
func Analytic(candidates <-chan Candidate, workersCount int) <-chan Contact {
	workersCount = max(workersCount, 1)
	ch := make(chan Contact, workersCount)

	go func() {
		var wg sync.WaitGroup
		defer close(ch)

		for range workersCount {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for candidate := range candidates {
					contact := Contact{Candidate: candidate}
					typ, ok := analyticContact(candidate.A, candidate.B, &contact.Manifold)
					if ok && typ.Positive() {
						contact.Type = typ
						ch <- contact
					}
				}
			}()
		}

		wg.Wait()
	}()

	return ch
}

// SAT runs the OBB-OBB separating axis test on every candidate. Candidates
// that are not two boxes are dropped.
func SAT(candidates <-chan Candidate, workersCount int) <-chan Contact {
	workersCount = max(workersCount, 1)
	ch := make(chan Contact, workersCount)

	go func() {
		var wg sync.WaitGroup
		defer close(ch)

		for range workersCount {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for candidate := range candidates {
					a, aIsBox := asOBB(candidate.A)
					b, bIsBox := asOBB(candidate.B)
					if !aIsBox || !bIsBox {
						continue
					}

					contact := Contact{Candidate: candidate}
					contact.Type = intersection.ObbObb(a, b, &contact.Manifold)
					if contact.Type.Positive() {
						ch <- contact
					}
				}
			}()
		}

		wg.Wait()
	}()

	return ch
}

// MPR runs MPR on every convex candidate whose bounding boxes overlap, each
// worker with its own pooled engine
func MPR(candidates <-chan Candidate, workersCount int) <-chan Contact {
	workersCount = max(workersCount, 1)
	ch := make(chan Contact, workersCount)

	go func() {
		var wg sync.WaitGroup
		defer close(ch)

		for range workersCount {
			wg.Add(1)
			go func() {
				defer wg.Done()
				engine := mpr.Get()
				defer mpr.Put(engine)

				for candidate := range candidates {
					a, aIsConvex := candidate.A.(shape.Convex)
					b, bIsConvex := candidate.B.(shape.Convex)
					if !aIsConvex || !bIsConvex || !shape.Bounds(a).Overlaps(shape.Bounds(b)) {
						continue
					}

					contact := Contact{Candidate: candidate}
					contact.Manifold.PointCount = 1
					contact.Type = engine.Test(a, b, &contact.Manifold)
					if contact.Type.Positive() {
						ch <- contact
					}
				}
			}()
		}

		wg.Wait()
	}()

	return ch
}

// kind orders the shapes that have closed form contacts. The generators take
// their shapes in this order.
type kind int8

const (
	kindPlane kind = iota
	kindBox
	kindCapsule
	kindSphere
	kindOther
)

func kindOf(s shape.Shape) kind {
	if _, ok := asPlane(s); ok {
		return kindPlane
	}
	if _, ok := asOBB(s); ok {
		return kindBox
	}
	switch s.(type) {
	case shape.Capsule:
		return kindCapsule
	case shape.Sphere:
		return kindSphere
	}
	return kindOther
}

// route picks the stage of a pair
func route(a, b shape.Shape) stage {
	first, second := min(kindOf(a), kindOf(b)), max(kindOf(a), kindOf(b))

	switch {
	case first == kindBox && second == kindBox:
		return stageSAT
	case first == kindPlane,
		first == kindBox && second == kindSphere,
		first == kindCapsule && second != kindOther:
		return stageAnalytic
	case first == kindSphere && second == kindSphere:
		return stageAnalytic
	}

	_, aIsConvex := a.(shape.Convex)
	_, bIsConvex := b.(shape.Convex)
	if aIsConvex && bIsConvex {
		return stageMPR
	}
	return stageNone
}

// analyticContact writes the closed form contact of a and b. It returns false
// when the pair has none. Two planes never touch.
func analyticContact(a, b shape.Shape, manifold *intersection.Manifold) (intersection.Type, bool) {
	if kindOf(a) > kindOf(b) {
		typ, ok := analyticContact(b, a, manifold)
		if ok && typ.Positive() && manifold != nil {
			manifold.Flip()
		}
		return typ.Swapped(), ok
	}

	if plane, ok := asPlane(a); ok {
		switch other := b.(type) {
		case shape.Sphere:
			return intersection.PlaneSphere(plane, other, manifold), true
		case shape.Capsule:
			return intersection.PlaneCapsule(plane, other, manifold), true
		}
		if _, ok := asPlane(b); ok {
			return intersection.TypeNone, true
		}
		if box, ok := asOBB(b); ok {
			return intersection.PlaneOBB(plane, box, manifold), true
		}
		if convex, ok := b.(shape.Convex); ok {
			return intersection.PlaneConvex(plane, convex, manifold), true
		}
		return intersection.TypeNone, false
	}

	switch first := a.(type) {
	case shape.Capsule:
		switch second := b.(type) {
		case shape.Capsule:
			return intersection.CapsuleCapsule(first, second, manifold), true
		case shape.Sphere:
			return intersection.CapsuleSphere(first, second, manifold), true
		}
	case shape.Sphere:
		if second, ok := b.(shape.Sphere); ok {
			return intersection.SphereSphere(first, second, manifold), true
		}
	}

	if box, ok := asOBB(a); ok {
		if sphere, ok := b.(shape.Sphere); ok {
			return intersection.OBBSphere(box, sphere, manifold), true
		}
	}
	return intersection.TypeNone, false
}

// asOBB views axis aligned and oriented boxes as an OBB
func asOBB(s shape.Shape) (shape.OBB, bool) {
	switch box := s.(type) {
	case shape.OBB:
		return box, true
	case *shape.OBB:
		if box != nil {
			return *box, true
		}
	case shape.AABB:
		return box.ToOBB(), true
	}
	return shape.OBB{}, false
}

func asPlane(s shape.Shape) (shape.Plane, bool) {
	switch plane := s.(type) {
	case shape.Plane:
		return plane, true
	case *shape.Plane:
		if plane != nil {
			return *plane, true
		}
	}
	return shape.Plane{}, false
}
