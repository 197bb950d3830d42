package models

// Constantes pour les rôles disponibles
const (
	// RoleStaff donne accès à l'interface d'administration, limité au
	// tournoi épinglé sur le profil de l'utilisateur.
	RoleStaff = "staff"
	// RoleAdmin correspond au superutilisateur : visibilité sur tous les
	// tournois, sans restriction.
	RoleAdmin = "admin"
)

// GetDefaultRoles retourne les rôles par défaut pour un nouvel utilisateur
func GetDefaultRoles() Roles {
	return Roles{RoleStaff}
}
