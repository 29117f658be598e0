package services

// Services defined in this package:
// - AuthService: registration, login, Google sign-in, token lifecycle
// - ProfileService: cadet profile editor with record guards
// - AdminService: admin console snapshot and generic record mutations
// - ContentService: cached public content lists
// - ExportService: admin Excel export
