package physics

import "github.com/milk9111/rigid2d/geom"

// KinematicOverlapFunc receives kinematic pairs whose shapes overlap. The
// separation normal points from b toward a. No contact is recorded for these
// pairs.
type KinematicOverlapFunc func(a, b *RigidBody, sep geom.Separation)

// DetectionStats counts the work done by one detection pass.
type DetectionStats struct {
	KinematicPairs int
	StaticPairs    int
	BroadPhaseHits int
	NarrowHits     int
	Suppressed     int
	Contacts       int
}

// DetectCollisions rebuilds the contact lists of all bodies. Contacts are
// recorded on kinematic bodies only, against static bodies. Kinematic pairs
// are tested once each and reported through onKinematic, which may be nil.
func DetectCollisions(static, kinematic []*RigidBody, onKinematic KinematicOverlapFunc) DetectionStats {
	var stats DetectionStats
	for _, b := range static {
		b.clearContacts()
	}
	for _, b := range kinematic {
		b.clearContacts()
	}

	for i, a := range kinematic {
		for _, b := range kinematic[i+1:] {
			stats.KinematicPairs++
			if !a.bounds.Intersects(b.bounds) {
				continue
			}
			stats.BroadPhaseHits++
			sep := Separate(a.collider, b.collider)
			if !sep.Overlapping() {
				continue
			}
			stats.NarrowHits++
			if onKinematic != nil {
				onKinematic(a, b, sep)
			}
		}
	}

	for _, k := range kinematic {
		for _, s := range static {
			stats.StaticPairs++
			if !k.bounds.Intersects(s.bounds) {
				continue
			}
			stats.BroadPhaseHits++
			sep := Separate(k.collider, s.collider)
			if !sep.Overlapping() {
				continue
			}
			stats.NarrowHits++
			if !s.filter.AllowsNormal(sep.Normal) {
				stats.Suppressed++
				continue
			}
			k.contacts = append(k.contacts, GenerateContact(k, s, sep))
			stats.Contacts++
		}
	}
	return stats
}
