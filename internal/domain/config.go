package domain

// KeyPrefix namespaces all pagetrail keys in the database.
const KeyPrefix = "pagetrail:"

// DefaultVectorDimensions matches all-MiniLM-L6-v2, the default embedding model.
const DefaultVectorDimensions = 384
