package models

// DefaultPageSize is the number of contacts shown per listing page
const DefaultPageSize = 20

// MaxPage is the highest contact listing page that can be requested
const MaxPage = 1_000_000

// DefaultMatchLimit caps the candidates suggested for a client
const DefaultMatchLimit = 5

// MaxTitleLength bounds deal titles and contact names
const MaxTitleLength = 255
