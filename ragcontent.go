// Package ragcontent exposes a wiki's content to an external
// retrieval-augmented-generation (RAG) indexing service. It decides which
// pages qualify for indexing, notifies the external service when a
// qualifying page changes, and serves a clean plain-text representation of a
// page's rendered content for the service to pull.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package ragcontent
