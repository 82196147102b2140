package main

import (
	"flag"
	"log"

	"gestion-system/pkg/config"
	"gestion-system/pkg/database/postgresql"
	"gestion-system/seeders"
)

func main() {
	runBase := flag.Bool("base", false, "Sembrar permisos, roles y sus asignaciones")
	runAdmin := flag.Bool("admin", false, "Crear el usuario administrador inicial")
	runAll := flag.Bool("all", false, "Ejecutar todos los seeders")
	adminUser := flag.String("admin-user", "admin", "Login del administrador")
	adminPassword := flag.String("admin-password", "", "Contraseña del administrador (obligatoria con -admin o -all)")

	flag.Parse()

	if !*runBase && !*runAdmin && !*runAll {
		log.Println("No se seleccionó ningún seeder.")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runAll || *runBase {
		seeders.SeedCatalogoBase(dbPool)
	}

	if *runAll || *runAdmin {
		if *adminPassword == "" {
			log.Fatal("Falta -admin-password: la contraseña inicial no tiene valor por defecto.")
		}
		seeders.SeedAdmin(dbPool, *adminUser, *adminPassword)
	}
}
