// Package migrate copies symptom reports between storage backends, most
// commonly from an embedded Badger database into a Typesense collection.
// Reports are moved in batches with retry on transient destination
// failures; reports whose embeddings do not match the expected dimension
// are skipped and counted rather than aborting the run.
package migrate
