// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

/*
Package validation provides struct validation using go-playground/validator v10.

A single validator instance is shared by the configuration loader, the
dataset loader and the recommendation engine.

# Custom Tags

	datasetname  a safe file stem: letters, digits, '.', '_' and '-',
	             starting with a letter or digit, at most 128 characters,
	             never containing ".."
	entityname   non-blank, at most 128 characters, no control characters

# Usage

	type CoresRequest struct {
	    Dataset string `validate:"required,datasetname"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    return verr
	}

ValidateStruct returns a *RequestValidationError. Compare it against nil
before converting it to error so a nil pointer never becomes a non-nil
interface.
*/
package validation
