/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/config"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/constants"
	pkgcontext "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/context"
	dbprovider "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/database/provider"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/log"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/managers"
)

const (
	configFile = "/repository/conf/deployment.yaml"
	schemaFile = "/dbscripts/schema.sql"
)

func main() {
	pkgHome := getPKGHome()

	envFiles, _ := filepath.Glob("config/*.env")
	_ = godotenv.Load(envFiles...)

	// Load the configuration file.
	pkgConfig, err := config.LoadConfig(pkgHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize runtime configurations.
	if err := config.InitializePKGRuntime(pkgHome, pkgConfig); err != nil {
		stdlog.Fatalf("Failed to initialize runtime configuration: %v", err)
	}

	// Initialize logger.
	if err := log.Init(pkgConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	// Optional schema bootstrap for fresh environments.
	if os.Getenv("PKG_INIT_SCHEMA") == "true" {
		dbClient, err := dbprovider.NewDBProvider().GetDBClient()
		if err != nil {
			logger.Fatal("Failed to connect to database for schema init", log.Error(err))
		}
		if err := dbClient.InitDatabase(pkgHome, schemaFile); err != nil {
			logger.Fatal("Failed to initialize database schema", log.Error(err))
		}
		_ = dbClient.Close()
	}

	serverAddr := fmt.Sprintf("%s:%d", pkgConfig.Addr.Host, pkgConfig.Addr.Port)
	mux := enableCORS(withTraceID(initMultiplexer()))

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.String("addr", serverAddr), log.Error(err))
	}
	logger.Info("Knowledge graph merge engine started", log.String("addr", serverAddr))

	server := &http.Server{Handler: mux}
	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Fatal("Failed to register the services", log.Error(err))
	}

	return mux
}

// withTraceID attaches a trace id to every request context, honoring an
// X-Request-Id header from upstream proxies, and logs the request with it.
func withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := pkgcontext.WithTraceID(r.Context(), r.Header.Get("X-Request-Id"))
		log.GetLogger().Debug("Handling request",
			log.String("method", r.Method),
			log.String("path", r.URL.Path),
			log.String("traceId", pkgcontext.GetTraceID(ctx)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getPKGHome() string {

	projectHomeFlag := flag.String("pkgHome", ".", "Path to the knowledge graph server home directory")
	flag.Parse()
	return *projectHomeFlag
}
