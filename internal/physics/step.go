package physics

// Step advances bodies by one tick of length dt and returns the contacts it resolved.
//
// The tick is one batch: every body is integrated, then every pair is tested
// against the same post-integration snapshot, then contacts are resolved one by
// one in discovery order. A body in several contacts is corrected sequentially.
// dt is used as given; large values are not sub-stepped.
func Step(bodies []*Body, cfg Config, dt float32) []Contact {
	for _, b := range bodies {
		b.Integrate(dt, cfg)
	}

	var contacts []Contact
	if cfg.Workers > 1 {
		contacts = CheckAllCollisionsParallel(bodies, cfg.Workers)
	} else {
		contacts = CheckAllCollisions(bodies)
	}

	for _, b := range bodies {
		b.supported = false
	}
	for _, c := range contacts {
		Resolve(c, cfg, dt)
	}
	return contacts
}
