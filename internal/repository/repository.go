package repository

import "errors"

// Package repository contains data access layer abstractions.
// Implementations can live in subpackages (e.g., postgres) inside this directory.

// ErrStaleStatus is returned by WorkflowRepository.ApplyTransition when the
// document's status no longer matches the from-status the update was
// conditioned on, i.e. a concurrent transition won the race.
var ErrStaleStatus = errors.New("document status changed concurrently")
