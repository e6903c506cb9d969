package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Teller Desk API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Teller Desk API",
    "version": "1.0.0"
  },
  "paths": {
    "/healthz": {
      "get": {
        "summary": "Liveness probe",
        "responses": {
          "200": {
            "description": "OK"
          }
        }
      }
    },
    "/metrics": {
      "get": {
        "summary": "Prometheus metrics",
        "responses": {
          "200": {
            "description": "OK"
          }
        }
      }
    },
    "/auth/token": {
      "post": {
        "summary": "Issue a teller bearer token",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/TokenRequest"
              }
            }
          }
        },
        "responses": {
          "201": {
            "description": "Token issued"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/reference-data": {
      "get": {
        "summary": "Operators, sources of funds, purposes, payment methods, fee payers and currencies",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/rates": {
      "get": {
        "summary": "List rates",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/rate": {
      "get": {
        "summary": "Get the rate for a currency pair",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "from",
            "in": "query",
            "required": true,
            "schema": {
              "type": "string"
            }
          },
          {
            "name": "to",
            "in": "query",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Not found"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/convert": {
      "post": {
        "summary": "Convert an amount",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/ConvertRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Not found"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/quotes": {
      "post": {
        "summary": "Quote fee, total and recipient amount",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/QuoteRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Not found"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/clients": {
      "get": {
        "summary": "Get a client",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "id",
            "in": "query",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Not found"
          },
          "500": {
            "description": "Server error"
          }
        }
      },
      "post": {
        "summary": "Create or update a client",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/ClientRequest"
              }
            }
          }
        },
        "responses": {
          "201": {
            "description": "Client saved"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/clients/search": {
      "get": {
        "summary": "Search clients by name, id, phone or email",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "q",
            "in": "query",
            "required": false,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/clients/profile": {
      "get": {
        "summary": "Sender profile with limits, history and recent receivers",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "id",
            "in": "query",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Not found"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/clients/history": {
      "get": {
        "summary": "Transfer history of a client",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "id",
            "in": "query",
            "required": true,
            "schema": {
              "type": "string"
            }
          },
          {
            "name": "role",
            "in": "query",
            "required": false,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/clients/recent-receivers": {
      "get": {
        "summary": "Recent receivers of a sender",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "senderId",
            "in": "query",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/clients/kyc": {
      "get": {
        "summary": "List KYC verifications, newest first",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "clientId",
            "in": "query",
            "required": false,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Client not found"
          },
          "500": {
            "description": "Server error"
          }
        }
      },
      "post": {
        "summary": "Record a pending KYC verification for a client",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["clientId", "documentType", "documentNumber", "issueDate"],
                "properties": {
                  "clientId": {"type": "string"},
                  "documentType": {"type": "string"},
                  "documentNumber": {"type": "string"},
                  "issueDate": {"type": "string", "format": "date"},
                  "expiryDate": {"type": "string", "format": "date"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {
            "description": "Created"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Client not found"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/send-money/sessions": {
      "post": {
        "summary": "Start a send money session",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "responses": {
          "201": {
            "description": "Session started"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "500": {
            "description": "Server error"
          }
        }
      },
      "get": {
        "summary": "Get a send money session",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "id",
            "in": "query",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Not found"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/send-money/sender": {
      "post": {
        "summary": "Select the sender",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/SelectPartyRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Session not found"
          },
          "422": {
            "description": "Step incomplete, transfer rejected or 2FA required"
          },
          "502": {
            "description": "Transfer failed after retries"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/send-money/receiver": {
      "post": {
        "summary": "Select the receiver",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/SelectPartyRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Session not found"
          },
          "422": {
            "description": "Step incomplete, transfer rejected or 2FA required"
          },
          "502": {
            "description": "Transfer failed after retries"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/send-money/form": {
      "post": {
        "summary": "Update form fields",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/UpdateFormRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Session not found"
          },
          "422": {
            "description": "Step incomplete, transfer rejected or 2FA required"
          },
          "502": {
            "description": "Transfer failed after retries"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/send-money/navigate": {
      "post": {
        "summary": "Move to the next or previous step",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/NavigateRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Session not found"
          },
          "422": {
            "description": "Step incomplete, transfer rejected or 2FA required"
          },
          "502": {
            "description": "Transfer failed after retries"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/send-money/submit": {
      "post": {
        "summary": "Submit the transfer",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/SessionRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Session not found"
          },
          "422": {
            "description": "Step incomplete, transfer rejected or 2FA required"
          },
          "502": {
            "description": "Transfer failed after retries"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/send-money/2fa/request": {
      "post": {
        "summary": "Issue a 2FA code",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/SessionRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Not found"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/send-money/2fa/verify": {
      "post": {
        "summary": "Verify a 2FA code",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/TwoFactorVerifyRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Session not found"
          },
          "422": {
            "description": "Step incomplete, transfer rejected or 2FA required"
          },
          "502": {
            "description": "Transfer failed after retries"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/send-money/reuse": {
      "post": {
        "summary": "Prefill from a past transfer",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/ReuseTransactionRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Not found"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/send-money/reset": {
      "post": {
        "summary": "Reset the session",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/SessionRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Not found"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/transfers": {
      "get": {
        "summary": "Get a transfer",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "reference",
            "in": "query",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Not found"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/transfers/receipt": {
      "get": {
        "summary": "Download the PDF receipt of a completed transfer",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "reference",
            "in": "query",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Not found"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/transfers/limits": {
      "get": {
        "summary": "Remaining limits of a sender",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "senderId",
            "in": "query",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/till": {
      "get": {
        "summary": "Registers of the teller; admins may pass tellerId",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "500": {
            "description": "Server error"
          },
          "403": {
            "description": "Forbidden"
          }
        },
        "parameters": [
          {
            "name": "tellerId",
            "in": "query",
            "required": false,
            "schema": {
              "type": "string"
            }
          }
        ]
      }
    },
    "/till/open": {
      "post": {
        "summary": "Open a register",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/OpenRegisterRequest"
              }
            }
          }
        },
        "responses": {
          "201": {
            "description": "Register opened"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "409": {
            "description": "Register already open"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/till/movements": {
      "get": {
        "summary": "List cash movements",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "currency",
            "in": "query",
            "required": false,
            "schema": {
              "type": "string"
            }
          },
          {
            "name": "limit",
            "in": "query",
            "required": false,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "500": {
            "description": "Server error"
          }
        }
      },
      "post": {
        "summary": "Record a cash movement",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/CashMovementRequest"
              }
            }
          }
        },
        "responses": {
          "201": {
            "description": "Movement recorded"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Register not found"
          },
          "422": {
            "description": "Insufficient balance"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/till/clear-preview": {
      "post": {
        "summary": "Preview clearing every register",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/ClearPreviewRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    },
    "/till/clear": {
      "post": {
        "summary": "Clear a register",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/ClearRegisterRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "OK"
          },
          "400": {
            "description": "Validation error"
          },
          "401": {
            "description": "Unauthorized"
          },
          "404": {
            "description": "Register not found"
          },
          "422": {
            "description": "Insufficient balance"
          },
          "500": {
            "description": "Server error"
          }
        }
      }
    }
  },
  "components": {
    "securitySchemes": {
      "BasicAuth": {
        "type": "http",
        "scheme": "basic"
      },
      "BearerAuth": {
        "type": "http",
        "scheme": "bearer",
        "bearerFormat": "JWT"
      }
    },
    "schemas": {
      "TokenRequest": {
        "type": "object",
        "properties": {
          "tellerId": {
            "type": "string"
          },
          "role": {
            "type": "string",
            "enum": [
              "teller",
              "admin"
            ]
          }
        },
        "required": [
          "tellerId"
        ]
      },
      "ConvertRequest": {
        "type": "object",
        "properties": {
          "amount": {
            "type": "string"
          },
          "fromCcy": {
            "type": "string"
          },
          "toCcy": {
            "type": "string"
          }
        },
        "required": [
          "amount",
          "fromCcy",
          "toCcy"
        ]
      },
      "QuoteRequest": {
        "type": "object",
        "properties": {
          "sourceCurrency": {
            "type": "string"
          },
          "destinationCurrency": {
            "type": "string"
          },
          "amount": {
            "type": "string"
          },
          "exchangeRate": {
            "type": "string"
          },
          "extraChargesPercent": {
            "type": "string"
          },
          "tellerDiscountPercent": {
            "type": "string"
          },
          "feePayer": {
            "type": "string",
            "enum": [
              "sender",
              "beneficiary",
              "both"
            ]
          },
          "promoCode": {
            "type": "string"
          }
        },
        "required": [
          "sourceCurrency",
          "destinationCurrency",
          "amount"
        ]
      },
      "ClientRequest": {
        "type": "object",
        "properties": {
          "id": {
            "type": "string"
          },
          "role": {
            "type": "string",
            "enum": [
              "sender",
              "receiver"
            ]
          },
          "firstName": {
            "type": "string"
          },
          "middleName": {
            "type": "string"
          },
          "lastName": {
            "type": "string"
          },
          "phone": {
            "type": "string"
          },
          "email": {
            "type": "string"
          },
          "streetAddress": {
            "type": "string"
          },
          "city": {
            "type": "string"
          },
          "country": {
            "type": "string"
          },
          "dateOfBirth": {
            "type": "string"
          },
          "nationality": {
            "type": "string"
          },
          "idType": {
            "type": "string"
          },
          "idNumber": {
            "type": "string"
          },
          "idExpiryDate": {
            "type": "string"
          },
          "customerCardNumber": {
            "type": "string"
          },
          "bankAccount": {
            "type": "string"
          },
          "bankName": {
            "type": "string"
          }
        },
        "required": [
          "role",
          "firstName",
          "lastName"
        ],
        "description": "Senders also need phone, country, idType and idNumber."
      },
      "SessionRequest": {
        "type": "object",
        "properties": {
          "sessionId": {
            "type": "string"
          }
        },
        "required": [
          "sessionId"
        ]
      },
      "SelectPartyRequest": {
        "type": "object",
        "properties": {
          "sessionId": {
            "type": "string"
          },
          "clientId": {
            "type": "string"
          },
          "client": {
            "$ref": "#/components/schemas/ClientRequest"
          },
          "sameAsSender": {
            "type": "boolean"
          }
        },
        "required": [
          "sessionId"
        ]
      },
      "UpdateFormRequest": {
        "type": "object",
        "properties": {
          "sessionId": {
            "type": "string"
          },
          "currency": {
            "type": "string"
          },
          "destinationCurrency": {
            "type": "string"
          },
          "amount": {
            "type": "string"
          },
          "exchangeRate": {
            "type": "string"
          },
          "extraChargesPercent": {
            "type": "string"
          },
          "tellerDiscountPercent": {
            "type": "string"
          },
          "feePayer": {
            "type": "string"
          },
          "promoCode": {
            "type": "string"
          },
          "paymentMethod": {
            "type": "string"
          },
          "amountTendered": {
            "type": "string"
          },
          "sourceOfFunds": {
            "type": "string"
          },
          "purposeOfTransfer": {
            "type": "string"
          },
          "transferType": {
            "type": "string"
          },
          "operator": {
            "type": "string"
          },
          "customerCardNumberDelivery": {
            "type": "string"
          },
          "notes": {
            "type": "string"
          },
          "agreeToTerms": {
            "type": "boolean"
          }
        },
        "required": [
          "sessionId"
        ]
      },
      "NavigateRequest": {
        "type": "object",
        "properties": {
          "sessionId": {
            "type": "string"
          },
          "direction": {
            "type": "string",
            "enum": [
              "next",
              "back"
            ]
          }
        },
        "required": [
          "sessionId",
          "direction"
        ]
      },
      "TwoFactorVerifyRequest": {
        "type": "object",
        "properties": {
          "sessionId": {
            "type": "string"
          },
          "code": {
            "type": "string",
            "pattern": "^[0-9]{6}$"
          }
        },
        "required": [
          "sessionId",
          "code"
        ]
      },
      "ReuseTransactionRequest": {
        "type": "object",
        "properties": {
          "sessionId": {
            "type": "string"
          },
          "reference": {
            "type": "string"
          }
        },
        "required": [
          "sessionId",
          "reference"
        ]
      },
      "OpenRegisterRequest": {
        "type": "object",
        "properties": {
          "currency": {
            "type": "string"
          },
          "openingBalance": {
            "type": "string"
          }
        },
        "required": [
          "currency",
          "openingBalance"
        ]
      },
      "CashMovementRequest": {
        "type": "object",
        "properties": {
          "currency": {
            "type": "string"
          },
          "type": {
            "type": "string",
            "enum": [
              "add",
              "remove"
            ]
          },
          "amount": {
            "type": "string"
          },
          "description": {
            "type": "string"
          }
        },
        "required": [
          "currency",
          "type",
          "amount",
          "description"
        ]
      },
      "ClearPreviewRequest": {
        "type": "object",
        "properties": {
          "amountsToLeave": {
            "type": "object",
            "additionalProperties": {
              "type": "string"
            }
          }
        }
      },
      "ClearRegisterRequest": {
        "type": "object",
        "properties": {
          "currency": {
            "type": "string"
          },
          "amountToLeave": {
            "type": "string"
          }
        },
        "required": [
          "currency",
          "amountToLeave"
        ]
      }
    }
  }
}`
