// Package dipolar models the electrodynamics of two mutually coupled point
// dipoles: a fluorescent emitter and a plasmonic nanoparticle. It provides
// frequency-dependent polarizability models for several particle geometries,
// the electrodynamic dipole-dipole coupling (Green) tensor, a self-consistent
// solver for the coupled dipole moments under an incident field, and the
// radiative cross sections derived from those moments.
//
// All computation is pure and stateless; every entity is produced and
// consumed within a single evaluation call. Units are CGS-Gaussian (lengths
// in cm, charge in statC), with drive energies given in eV and converted
// through the Constants context.
package dipolar

type Real = float64
