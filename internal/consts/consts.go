package consts

const (
	EPSILON0 = 8.8541878128e-12 // Vacuum permittivity (F/m)
)
