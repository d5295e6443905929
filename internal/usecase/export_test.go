package usecase

const LoginAttemptLimit = loginAttemptLimit
