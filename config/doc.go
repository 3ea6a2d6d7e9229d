/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads the YAML configuration that selects a repository
// backend. A minimal file looks like:
//
//	model_repository:
//	  class_path: modelrepo/repository/sqlite.Repository
//	  args:
//	    connection_string: ${SQLITE_PATH}
//
// Environment references are expanded before parsing, and a .env file is
// loaded when present so local development does not need exported variables.
package config
