package physics

// IntegrationStrategy advances kinematic bodies by dt seconds.
type IntegrationStrategy func(bodies []*RigidBody, dt float64)

// IntegrateKinematicMotion moves each kinematic body by its velocity.
func IntegrateKinematicMotion(bodies []*RigidBody, dt float64) {
	for _, b := range bodies {
		if b.bodyType != Kinematic {
			continue
		}
		b.moveBy(b.linearVelocity.Mult(dt), b.angularVelocity*dt)
	}
}

// IntegrateSlidingMotion removes the part of each body's velocity that
// points into the surfaces it touched in the last detection pass, stores
// the clamped velocity, then integrates. Bodies slide along walls instead
// of pushing into them every step.
func IntegrateSlidingMotion(bodies []*RigidBody, dt float64) {
	for _, b := range bodies {
		if b.bodyType != Kinematic {
			continue
		}
		v := b.linearVelocity
		for _, c := range b.contacts {
			if into := v.Dot(c.Normal); into < 0 {
				v = v.Sub(c.Normal.Mult(into))
			}
		}
		b.linearVelocity = v
	}
	IntegrateKinematicMotion(bodies, dt)
}
