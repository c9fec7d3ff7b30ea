package md

// Physical constants, SI units.
const (
	Avogadro         = 6.02214086e23  // mol^-1
	Boltzmann        = 1.38064852e-23 // J/K
	ElementaryCharge = 1.602176634e-19
)

// Atomic masses, kg/mol.
const (
	HydrogenMass = 1.008e-3
	HeliumMass   = 4.003e-3
	CarbonMass   = 12.011e-3
	NitrogenMass = 14.007e-3
	OxygenMass   = 15.999e-3
	NeonMass     = 20.180e-3
	ArgonMass    = 39.948e-3
)

// Van der Waals radii, meters.
const (
	HydrogenRadius = 120e-12
	HeliumRadius   = 140e-12
	CarbonRadius   = 170e-12
	NitrogenRadius = 155e-12
	OxygenRadius   = 152e-12
	NeonRadius     = 154e-12
	ArgonRadius    = 188e-12
)

// Unit conversions.
const (
	Femtosecond = 1e-15
	Picosecond  = 1e-12
	Nanosecond  = 1e-9
	Nanometer   = 1e-9
	Angstrom    = 1e-10
)
