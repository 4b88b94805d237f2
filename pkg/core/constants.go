package core

// Epsilon is the shared self-intersection offset used when spawning
// scattered rays and when stepping past an emitter's entry hit to find
// its exit. It is a single named design constant rather than a scattered
// magic number: too small causes shadow-acne self-intersection, too
// large causes light leaks under thin geometry.
const Epsilon = 1e-4

// TMax bounds plane intersection distance; planes have no natural finite
// extent so a hit must be discarded past this parameter to keep them
// from swallowing rays that should escape to the background.
const TMax = 1e4
