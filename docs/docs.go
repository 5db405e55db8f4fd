// Package docs registra el documento OpenAPI de la API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/warehouse": {
            "post": {
                "description": "Valida producto, bodega y orden pendiente, marca la orden como despachada y registra la línea en una sola transacción.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "warehouse"
                ],
                "summary": "Despachar orden (validación en la aplicación)",
                "parameters": [
                    {
                        "description": "Solicitud de despacho",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.FulfillOrderRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.FulfillOrderResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/warehouse/procedure": {
            "post": {
                "description": "Delega validación y escritura a la función add_product_to_warehouse.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "warehouse"
                ],
                "summary": "Despachar orden (función almacenada)",
                "parameters": [
                    {
                        "description": "Solicitud de despacho",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.FulfillOrderRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.FulfillOrderResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/warehouse/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "warehouse"
                ],
                "summary": "Obtener línea de despacho",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID de la línea",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.FulfillmentLineResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/warehouse/{id}/receipt": {
            "get": {
                "produces": [
                    "application/pdf"
                ],
                "tags": [
                    "warehouse"
                ],
                "summary": "Comprobante PDF de la línea de despacho",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID de la línea",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.FulfillOrderRequest": {
            "type": "object",
            "required": [
                "amount",
                "createdAt",
                "idProduct",
                "idWarehouse"
            ],
            "properties": {
                "amount": {
                    "type": "integer"
                },
                "createdAt": {
                    "type": "string"
                },
                "idProduct": {
                    "type": "integer"
                },
                "idWarehouse": {
                    "type": "integer"
                }
            }
        },
        "dto.FulfillOrderResponse": {
            "type": "object",
            "properties": {
                "idProductWarehouse": {
                    "type": "integer"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "dto.FulfillmentLineResponse": {
            "type": "object",
            "properties": {
                "amount": {
                    "type": "integer"
                },
                "createdAt": {
                    "type": "string"
                },
                "idOrder": {
                    "type": "integer"
                },
                "idProduct": {
                    "type": "integer"
                },
                "idProductWarehouse": {
                    "type": "integer"
                },
                "idWarehouse": {
                    "type": "integer"
                },
                "orderFulfilledAt": {
                    "type": "string"
                },
                "price": {
                    "type": "string"
                },
                "productName": {
                    "type": "string"
                },
                "warehouseName": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo metadatos exportados del documento.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Warehouse Fulfillment API",
	Description:      "Despacho de órdenes de compra desde bodega.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
