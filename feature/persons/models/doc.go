// Package models defines the persisted person entity.
package models
