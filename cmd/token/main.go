// token emite un JWT de desarrollo para probar la API sin el servicio de identidad.
//
// Uso: go run ./cmd/token -user u1 -role Inventory_Holder -department IT
// Firma con JWT_SECRET y JWT_ISSUER de la configuración.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/inventario-mmg/internal/domain/catalog"
	"github.com/jhoicas/inventario-mmg/internal/domain/entity"
	"github.com/jhoicas/inventario-mmg/pkg/config"
	"github.com/jhoicas/inventario-mmg/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "ID del usuario (requerido)")
	role := flag.String("role", string(entity.RoleUser), "User | Inventory_Holder | MMG_Inventory_Holder | Super_Admin")
	department := flag.String("department", "", "departamento del usuario (requerido)")
	minutes := flag.Int("minutes", 0, "vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	dep := strings.ToUpper(strings.TrimSpace(*department))
	switch {
	case strings.TrimSpace(*userID) == "":
		fmt.Fprintln(os.Stderr, "-user es requerido")
		os.Exit(2)
	case !entity.Role(*role).Valid():
		fmt.Fprintf(os.Stderr, "rol desconocido: %q\n", *role)
		os.Exit(2)
	case !catalog.ValidDepartment(dep):
		fmt.Fprintf(os.Stderr, "departamento desconocido: %q\n", *department)
		os.Exit(2)
	}

	exp := *minutes
	if exp <= 0 {
		exp = cfg.JWT.Expiration
	}
	token, err := jwt.Generate(cfg.JWT.Secret, jwt.Identity{
		UserID:     strings.TrimSpace(*userID),
		Role:       *role,
		Department: dep,
	}, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
