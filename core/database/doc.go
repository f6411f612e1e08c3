// Package database handles database connections and the catalog import.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL connections based on the application's configuration, plus an sqlite driver
// for local experiments and tests.
//
// # Connect
//
// The generic Connect function establishes a connection to the database and
// verifies it with a ping before handing it out.
//
// # Catalog Import
//
// ImportCatalog replaces the stored vehicle catalog with a pipeline result
// in one transaction; every row carries the run id of the batch that wrote
// it. Migrate creates the three destination tables.
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema. VerifyCatalogSchema
// checks the destination tables against the columns an import writes, so schema
// drift fails an import before any row is touched.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	if err := database.VerifyCatalogSchema(db); err != nil { ... }
//	err = database.ImportCatalog(ctx, db, result)
package database
