package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "University Timetable API",
        "description": "Session scheduling with room capacity and slot collision checks",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": ["http"],
    "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
    "tags": [
        {"name": "Sessions", "description": "Timetable scheduling"},
        {"name": "Rooms"},
        {"name": "Classes"},
        {"name": "Teachers", "description": "Teacher accounts and teaching units"},
        {"name": "Students"},
        {"name": "Wishes", "description": "Teacher slot preferences"},
        {"name": "Resources", "description": "Course files"},
        {"name": "Dashboard"},
        {"name": "Authentication"}
    ],
    "paths": {
        "/api/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {
                        "description": "Validation or scheduling rule failure",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/LoginRequest"}
                    }
                ]
            }
        },
        "/api/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user claims",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Create classe",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {
                        "description": "Validation or scheduling rule failure",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ClassRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/classes/{id}": {
            "get": {
                "tags": ["Classes"],
                "summary": "Get classe",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Classe ID"
                    }
                ],
                "security": [{"BearerAuth": []}]
            },
            "put": {
                "tags": ["Classes"],
                "summary": "Update classe",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {
                        "description": "Validation or scheduling rule failure",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Classe ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ClassRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Classes"],
                "summary": "Delete classe",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Classe ID"
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/classes/{id}/sessions": {
            "get": {
                "tags": ["Sessions"],
                "summary": "List a class timetable",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Class ID"
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/classes/{id}/timetable/export": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Export a class timetable",
                "produces": [
                    "text/csv",
                    "application/pdf",
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Class ID"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": ["csv", "pdf", "xlsx"],
                        "default": "csv"
                    }
                ],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "400": {
                        "description": "Unsupported format",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/resources": {
            "post": {
                "tags": ["Resources"],
                "summary": "Upload a course resource",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true},
                    {"name": "nom", "in": "formData", "type": "string", "required": true},
                    {"name": "ueId", "in": "formData", "type": "integer", "required": true},
                    {"name": "teacherId", "in": "formData", "type": "integer"},
                    {"name": "categorie", "in": "formData", "type": "string", "default": "Cours"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {
                        "description": "Validation or scheduling rule failure",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/resources/{id}": {
            "get": {
                "tags": ["Resources"],
                "summary": "Resource metadata with a signed download URL",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Resource ID"
                    }
                ],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Resources"],
                "summary": "Delete a resource",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Resource ID"
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/resources/{id}/download": {
            "get": {
                "tags": ["Resources"],
                "summary": "Download a resource file",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Resource ID"
                    },
                    {"name": "token", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "401": {
                        "description": "Invalid or expired link",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                }
            }
        },
        "/api/rooms": {
            "get": {
                "tags": ["Rooms"],
                "summary": "List rooms",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["Rooms"],
                "summary": "Create room",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {
                        "description": "Validation or scheduling rule failure",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/RoomRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/rooms/{id}": {
            "get": {
                "tags": ["Rooms"],
                "summary": "Get room",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "Room ID"}],
                "security": [{"BearerAuth": []}]
            },
            "put": {
                "tags": ["Rooms"],
                "summary": "Update room",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {
                        "description": "Validation or scheduling rule failure",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Room ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/RoomRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Rooms"],
                "summary": "Delete room",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "Room ID"}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/sessions": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Schedule a session",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {
                        "description": "Validation or scheduling rule failure",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/SessionRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}],
                "description": "The room must seat the class and be free for the weekday and time slot."
            }
        },
        "/api/sessions/{id}": {
            "put": {
                "tags": ["Sessions"],
                "summary": "Move or edit a session",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {
                        "description": "Validation or scheduling rule failure",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Session ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/SessionRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Sessions"],
                "summary": "Delete a session",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Session ID"
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/stats": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Administration counters",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/students/register": {
            "post": {
                "tags": ["Students"],
                "summary": "Register a student",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {
                        "description": "Validation or scheduling rule failure",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/StudentRegistrationRequest"}
                    }
                ]
            }
        },
        "/api/students/{id}/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Student dashboard",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Student ID"
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/teachers": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List teachers",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["Teachers"],
                "summary": "Create teacher",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {
                        "description": "Validation or scheduling rule failure",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/TeacherRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/teachers/{id}": {
            "put": {
                "tags": ["Teachers"],
                "summary": "Update teacher",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {
                        "description": "Validation or scheduling rule failure",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Teacher ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/TeacherRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Teachers"],
                "summary": "Delete teacher with units, sessions, wishes and resources",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Teacher ID"
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/teachers/{id}/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Teacher dashboard",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Teacher ID"
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/teachers/{id}/form-data": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Scheduling form data",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Teacher ID"
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/teachers/{id}/resources": {
            "get": {
                "tags": ["Resources"],
                "summary": "List a teacher's resources, newest first",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Teacher ID"
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/teachers/{id}/sessions": {
            "get": {
                "tags": ["Sessions"],
                "summary": "List a teacher's sessions",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Teacher ID"
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/teachers/{id}/teaching-units": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List a teacher's teaching units",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Teacher ID"
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/teachers/{id}/wishes": {
            "get": {
                "tags": ["Wishes"],
                "summary": "List a teacher's wishes",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Teacher ID"
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/teaching-units": {
            "post": {
                "tags": ["Teachers"],
                "summary": "Create teaching unit",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {
                        "description": "Validation or scheduling rule failure",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/TeachingUnitRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/wishes": {
            "post": {
                "tags": ["Wishes"],
                "summary": "Record a wish",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {
                        "description": "Validation or scheduling rule failure",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/WishRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/wishes/{id}": {
            "delete": {
                "tags": ["Wishes"],
                "summary": "Delete a wish",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "Wish ID"}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/health": {"get": {"summary": "Liveness check", "responses": {"200": {"description": "OK"}}}},
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {"200": {"description": "Ready"}, "503": {"description": "Database unreachable"}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "TEACHER", "STUDENT"]}
            },
            "required": ["email", "password"]
        },
        "SessionRequest": {
            "type": "object",
            "properties": {
                "ueId": {"type": "integer", "description": "Number or numeric string"},
                "classeId": {"type": "integer", "description": "Number or numeric string"},
                "salleId": {"type": "integer", "description": "Number or numeric string"},
                "jour": {"type": "string", "enum": ["Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi"]},
                "plageHoraire": {
                    "type": "string",
                    "enum": ["08:00-10:00", "10:00-12:00", "13:00-15:00", "15:00-17:00", "17:00-19:00"]
                },
                "date": {"type": "string", "format": "date"}
            },
            "required": ["ueId", "classeId", "salleId", "jour", "plageHoraire", "date"]
        },
        "RoomRequest": {
            "type": "object",
            "properties": {
                "nom": {"type": "string"},
                "capacite": {"type": "integer", "minimum": 1},
                "batiment": {"type": "string"},
                "departement": {"type": "string"}
            },
            "required": ["nom", "capacite"]
        },
        "ClassRequest": {
            "type": "object",
            "properties": {
                "nom": {"type": "string"},
                "effectif": {"type": "integer", "minimum": 1},
                "filiere": {"type": "string"},
                "departement": {"type": "string", "default": "Informatique"}
            },
            "required": ["nom", "effectif"]
        },
        "TeacherRequest": {
            "type": "object",
            "properties": {
                "nom": {"type": "string"},
                "email": {"type": "string"},
                "departement": {"type": "string"},
                "specialite": {"type": "string"},
                "ueCode": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["nom", "email"]
        },
        "TeachingUnitRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "nom": {"type": "string"},
                "teacherId": {"type": "integer", "description": "Number or numeric string"}
            },
            "required": ["code", "nom", "teacherId"]
        },
        "StudentRegistrationRequest": {
            "type": "object",
            "properties": {
                "nom": {"type": "string"},
                "email": {"type": "string"},
                "matricule": {"type": "string"},
                "classeId": {"type": "integer", "description": "Number or numeric string"},
                "password": {"type": "string"}
            },
            "required": ["nom", "email", "classeId", "password"]
        },
        "WishRequest": {
            "type": "object",
            "properties": {
                "teacherId": {"type": "integer", "description": "Number or numeric string"},
                "ueId": {"type": "integer", "description": "Number or numeric string"},
                "jour": {"type": "string"},
                "plageHoraire": {"type": "string"}
            },
            "required": ["teacherId", "ueId", "jour", "plageHoraire"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
