// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database behind the SQL nomination source.

# Connections

Open validates the type, opens the pool and pings it:

	conn, err := db.Open(db.TypePostgres, "postgres://...")
	conn, err := db.Open(db.TypeSQLite, "file:nominations.db")

SQLite pools are limited to one connection so an in-memory database is
shared by every query.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

  - nomination: one form response per row, mirroring the sheet columns
    (id_ella, nombre_ella, id_el, nombre_el, razon) plus submitted_at

Columns are nullable; a NULL cell is treated as missing by the source.
*/
package db
