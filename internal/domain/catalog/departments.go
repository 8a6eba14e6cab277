package catalog

// CentralDepartment departamento que mantiene el stock maestro por defecto.
const CentralDepartment = "MMG"

var departments = []string{
	"DIR SECT", "FSEG", "IT", "QRS", "PCM", "PSEG", "MMG", "ADMIN",
	"FINANCE", "MT", "SECURITY", "TFA", "CAL", "SARC", "ESRG", "FC&HB",
}

// Departments lista cerrada de departamentos de la organización.
func Departments() []string {
	return append([]string(nil), departments...)
}

// ValidDepartment indica si el departamento existe.
func ValidDepartment(dep string) bool {
	for _, d := range departments {
		if d == dep {
			return true
		}
	}
	return false
}
