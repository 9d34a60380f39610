package api

import (
	"github.com/invopop/jsonschema"
)

// Schemas возвращает JSON-схемы протокола по имени файла. Используется
// утилитой tools/schema для выгрузки контрактов клиенту.
func Schemas() map[string]*jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}

	command := reflector.Reflect(new(ClientCommand))
	command.Title = "Client Command"
	command.Description = "Envelope for every client-to-server message."

	response := reflector.Reflect(new(ServerResponse))
	response.Title = "Server Response"
	response.Description = "Per-tick simulation snapshot sent to the client."

	outcome := reflector.Reflect(new(OutcomeView))
	outcome.Title = "Combat Outcome"
	outcome.Description = "Record handed to the narrative collaborator when a combat encounter ends."

	return map[string]*jsonschema.Schema{
		"client_command.json":  command,
		"server_response.json": response,
		"combat_outcome.json":  outcome,
	}
}
