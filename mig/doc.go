/*
Package mig records version manifests for schema snapshots.

Object versions are sequential integers that are automatically assigned in comparison to the
last recorded manifest. If an object's content hash differs from the recorded hash, or there is
no record, the version is incremented. A snapshot version is derived the same way from its
objects' hashes, so any change anywhere bumps the snapshot version without ever declaring
version numbers explicitly.

Hashes cover an object's qualified name and its printed representation, which excludes
ephemeral fields, so derived state never causes version churn. Manifests are transparently
represented as JSON streams of version records.
*/
package mig
